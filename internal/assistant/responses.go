package assistant

import (
	"math/rand"
	"time"
)

var greetings = []string{
	"Hey there! 👋 Tell me about an expense or ask about your money.",
	"Hello! Ready to track some spending?",
	"Hi! What's happening with your finances today?",
}

var thanksReplies = []string{
	"You're welcome! 😊",
	"Anytime! Happy to help with your money.",
	"No problem at all!",
}

const helpResponse = `Here's what I can do:
💸 Log an expense: "spent 500 on groceries"
💵 Log income: "received 20000 salary"
📊 Check balance: "what's my balance"
🔍 Review spending: "how much did I spend"
🧾 Recent activity: "show recent transactions"
🎯 Budgets: "set budget of 5000 for food"`

const fallbackResponse = `I didn't catch that. Try something like "spent 500 on groceries" or ask "what's my balance". Say "help" for the full list.`

func greetingResponse() string {
	return pick(greetings)
}

func thanksResponse() string {
	return pick(thanksReplies)
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}

func currentMonthStart() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
