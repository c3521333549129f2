// Package capture implements the Quick Capture natural language parser for
// Iraqi-dialect transaction text. Free-form utterances like "تكسي بخمسة" are
// turned into a structured transaction guess (amount, category, direction,
// title, confidence) that the mobile app shows for confirmation.
package capture

// TransactionType is the direction of a parsed transaction.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// CategoryOther is the sentinel category used when no keyword matched.
const CategoryOther = "other"

// CategoryKeywords binds an ordered list of dialect trigger words to a
// category key. Category resolution is first-match-wins in declaration order,
// so the slice order matters.
type CategoryKeywords struct {
	Key      string
	Keywords []string
}

// Lexicon holds the static dialect knowledge pack: intent words, negative
// markers, per-category keyword lists, display names and the numeral word
// table. A Lexicon is read-only once built; extending it (keyword packs)
// produces a new copy.
type Lexicon struct {
	// ExpenseIntents and IncomeIntents signal spending vs. receiving when
	// found as a substring of the input.
	ExpenseIntents []string
	IncomeIntents  []string

	// NegativeMarkers suggest the text is not an actual transaction
	// ("اريد اشتري موبايل" is a wish, not a purchase). They only depress
	// the confidence score, they never hard-reject.
	NegativeMarkers []string

	// ExpenseCategories and IncomeCategories are scanned in order; the
	// first category with a keyword hit wins.
	ExpenseCategories []CategoryKeywords
	IncomeCategories  []CategoryKeywords

	// DisplayNames maps every category key (including CategoryOther) to a
	// human-readable Arabic label, used as the title fallback.
	DisplayNames map[string]string

	// NumeralWords maps dialect number words to their integer value.
	// Covers units, tens, مية and the dual الفين.
	NumeralWords map[string]int
}

// DefaultLexicon returns the built-in Iraqi-dialect knowledge pack.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		ExpenseIntents: []string{
			"صرفت", "اشتريت", "شريت", "دفعت", "انطيت", "خذيت", "كلفني",
		},
		IncomeIntents: []string{
			"استلمت", "حصلت", "اجاني", "وصلني", "ربحت", "قبضت", "بعت", "راتب",
		},
		NegativeMarkers: []string{
			"اريد", "أريد", "احتاج", "ناوي", "راح", "ممكن", "اتمنى",
			"شكد", "بيش", "سعر",
		},
		ExpenseCategories: []CategoryKeywords{
			{Key: "food", Keywords: []string{
				"اكل", "مطعم", "قهوة", "كافيه", "مقهى", "فطور", "غدا", "غداء",
				"عشاء", "شاورما", "مشاوي", "شاي",
			}},
			{Key: "groceries", Keywords: []string{
				"سوبرماركت", "ماركت", "بقالة", "علوة", "خضار", "خضرة", "تموين",
			}},
			{Key: "transport", Keywords: []string{
				"تكسي", "تاكسي", "اوبر", "بلي", "كيا", "باص", "توصيل",
				"بنزين", "وقود",
			}},
			{Key: "bills", Keywords: []string{
				"فاتورة", "فواتير", "كهرباء", "مولدة", "ماء", "مي", "انترنت",
				"نت", "موبايل", "كارت", "رصيد",
			}},
			{Key: "rent", Keywords: []string{"ايجار", "إيجار"}},
			{Key: "health", Keywords: []string{
				"دكتور", "طبيب", "دوا", "دواء", "صيدلية", "مستشفى", "عيادة",
				"تحليل",
			}},
			{Key: "shopping", Keywords: []string{
				"ملابس", "قندرة", "حذاء", "بدلة", "قميص", "عطر", "مكياج",
			}},
			{Key: "entertainment", Keywords: []string{
				"سينما", "لعبة", "العاب", "نتفلكس", "اشتراك", "ملاهي",
			}},
			{Key: "education", Keywords: []string{
				"مدرسة", "جامعة", "كلية", "قرطاسية", "دورة", "كورس",
			}},
		},
		IncomeCategories: []CategoryKeywords{
			{Key: "salary", Keywords: []string{"راتب", "معاش"}},
			{Key: "business", Keywords: []string{
				"مشروع", "ارباح", "ربح", "بيع", "بعت", "محل",
			}},
			{Key: "gift", Keywords: []string{"هدية", "هدايا", "عيدية"}},
			{Key: "debt", Keywords: []string{"دين", "سلفة", "قرض"}},
		},
		DisplayNames: map[string]string{
			"food":          "أكل ومطاعم",
			"groceries":     "مواد غذائية",
			"transport":     "مواصلات",
			"bills":         "فواتير",
			"rent":          "إيجار",
			"health":        "صحة",
			"shopping":      "تسوق",
			"entertainment": "ترفيه",
			"education":     "تعليم",
			"salary":        "راتب",
			"business":      "أرباح ومشاريع",
			"gift":          "هدايا",
			"debt":          "ديون",
			CategoryOther:   "حركة مالية",
		},
		NumeralWords: map[string]int{
			"صفر": 0, "واحد": 1, "اثنين": 2, "ثنين": 2,
			"ثلاثة": 3, "ثلاثه": 3, "تلاثة": 3, "تلاثه": 3,
			"اربعة": 4, "اربعه": 4, "أربعة": 4,
			"خمسة": 5, "خمسه": 5, "ستة": 6, "سته": 6,
			"سبعة": 7, "سبعه": 7, "ثمانية": 8, "ثمانيه": 8, "ثمنية": 8,
			"تسعة": 9, "تسعه": 9, "عشرة": 10, "عشره": 10,
			"عشرين": 20, "ثلاثين": 30, "تلاثين": 30, "اربعين": 40,
			"خمسين": 50, "ستين": 60, "سبعين": 70, "ثمانين": 80, "تسعين": 90,
			"مية": 100, "ميه": 100, "مائة": 100, "ميتين": 200,
			"الفين": 2000, "ألفين": 2000,
		},
	}
}

// CategoriesFor returns the ordered category table for the given direction.
func (l *Lexicon) CategoriesFor(t TransactionType) []CategoryKeywords {
	if t == TypeIncome {
		return l.IncomeCategories
	}
	return l.ExpenseCategories
}

// DisplayName resolves a category key to its label, falling back to the
// generic CategoryOther label for unknown keys. It never returns "".
func (l *Lexicon) DisplayName(key string) string {
	if name, ok := l.DisplayNames[key]; ok && name != "" {
		return name
	}
	return l.DisplayNames[CategoryOther]
}

// Clone returns a deep copy so keyword packs can extend the lexicon without
// mutating the shared default tables.
func (l *Lexicon) Clone() *Lexicon {
	c := &Lexicon{
		ExpenseIntents:  append([]string(nil), l.ExpenseIntents...),
		IncomeIntents:   append([]string(nil), l.IncomeIntents...),
		NegativeMarkers: append([]string(nil), l.NegativeMarkers...),
		DisplayNames:    make(map[string]string, len(l.DisplayNames)),
		NumeralWords:    make(map[string]int, len(l.NumeralWords)),
	}
	for _, cat := range l.ExpenseCategories {
		c.ExpenseCategories = append(c.ExpenseCategories, CategoryKeywords{
			Key:      cat.Key,
			Keywords: append([]string(nil), cat.Keywords...),
		})
	}
	for _, cat := range l.IncomeCategories {
		c.IncomeCategories = append(c.IncomeCategories, CategoryKeywords{
			Key:      cat.Key,
			Keywords: append([]string(nil), cat.Keywords...),
		})
	}
	for k, v := range l.DisplayNames {
		c.DisplayNames[k] = v
	}
	for k, v := range l.NumeralWords {
		c.NumeralWords[k] = v
	}
	return c
}

// allWords yields every word the lexicon knows about (intents, markers,
// keywords, numerals). Used to derive the protected و-prefix token set for
// the segmenter.
func (l *Lexicon) allWords() []string {
	var words []string
	words = append(words, l.ExpenseIntents...)
	words = append(words, l.IncomeIntents...)
	words = append(words, l.NegativeMarkers...)
	for _, cat := range l.ExpenseCategories {
		words = append(words, cat.Keywords...)
	}
	for _, cat := range l.IncomeCategories {
		words = append(words, cat.Keywords...)
	}
	for w := range l.NumeralWords {
		words = append(words, w)
	}
	return words
}
