package categorizer

// categoryKeywords binds a category label to its curated keyword list.
// Table order is the tie-break when a description matches keywords from
// more than one category, so this is a slice rather than a map.
type categoryKeywords struct {
	Category string
	Keywords []string
}

var keywordTable = []categoryKeywords{
	{"Food & Dining", []string{
		"restaurant", "pizza", "burger", "coffee", "cafe", "lunch", "dinner",
		"breakfast", "groceries", "supermarket", "food", "meal", "snack",
		"bakery", "swiggy", "zomato", "ubereats", "doordash", "mcdonalds",
		"starbucks", "dominos", "kfc", "subway", "tea", "juice", "ice cream",
		"food delivery", "takeout", "dine", "eating out", "fast food",
	}},
	{"Transport", []string{
		"uber", "lyft", "ola", "taxi", "cab", "bus", "train", "metro",
		"fuel", "petrol", "gas", "diesel", "parking", "toll", "car",
		"bike", "motorcycle", "airline", "flight", "airport", "travel",
		"commute", "ride", "transport", "auto", "rickshaw", "fare",
	}},
	{"Entertainment", []string{
		"movie", "cinema", "netflix", "spotify", "amazon prime", "disney",
		"hulu", "youtube", "gaming", "games", "concert", "show", "party",
		"club", "bar", "pub", "theatre", "music", "books", "magazine",
		"subscription", "streaming", "fun", "leisure", "hobby",
	}},
	{"Utilities", []string{
		"electricity", "electric bill", "water bill", "gas bill", "internet",
		"wifi", "broadband", "phone bill", "mobile recharge", "cable",
		"utility", "rent", "housing", "maintenance", "repair", "plumber",
		"electrician", "home", "apartment", "heating", "cooling",
	}},
	{"Shopping", []string{
		"amazon", "flipkart", "walmart", "target", "mall", "clothes",
		"shoes", "electronics", "gadget", "phone", "laptop", "furniture",
		"home decor", "appliance", "gift", "present", "shopping", "store",
		"retail", "online shopping", "fashion", "accessories", "jewelry",
	}},
	{"Healthcare", []string{
		"hospital", "doctor", "clinic", "medicine", "pharmacy", "medical",
		"health", "dental", "dentist", "eye", "optician", "glasses",
		"prescription", "therapy", "gym", "fitness", "workout", "yoga",
		"insurance", "health insurance", "checkup", "lab", "test",
	}},
	{"Education", []string{
		"school", "college", "university", "course", "tuition", "books",
		"textbook", "udemy", "coursera", "learning", "training", "workshop",
		"seminar", "certification", "exam", "study", "education", "class",
		"tutorial", "online course", "degree", "diploma",
	}},
	{"Savings", []string{
		"savings", "investment", "mutual fund", "stock", "fixed deposit",
		"fd", "rd", "recurring deposit", "retirement", "pension", "emi",
		"loan payment", "sip", "bonds", "gold", "crypto", "bitcoin",
	}},
	{"Salary", []string{
		"salary", "paycheck", "wages", "income", "pay", "compensation",
		"bonus", "commission", "earnings",
	}},
	{"Freelance", []string{
		"freelance", "consulting", "contract", "project payment", "gig",
		"side hustle", "client payment", "invoice", "hourly",
	}},
	{"Investment", []string{
		"dividend", "interest", "returns", "capital gains", "profit",
		"investment income", "rental income", "passive income",
	}},
	{"Gift", []string{
		"gift", "present", "birthday money", "cash gift", "received",
		"wedding gift", "bonus gift",
	}},
}

// KeywordTable exposes the (category, keywords) pairs in tie-break order.
func KeywordTable() map[string][]string {
	table := make(map[string][]string, len(keywordTable))
	for _, entry := range keywordTable {
		table[entry.Category] = entry.Keywords
	}
	return table
}

// Categories returns the known category labels in table order.
func Categories() []string {
	labels := make([]string, len(keywordTable))
	for i, entry := range keywordTable {
		labels[i] = entry.Category
	}
	return labels
}
