package domain

// ExampleActivities is the data a brand new local store starts with.
func ExampleActivities() []Activity {
	return []Activity{
		{
			ID:          "1",
			Title:       "Prova de Matemática",
			Description: "Estudar capítulos 5 e 6",
			Date:        "2024-01-20",
			Time:        "14:00",
			Subject:     "Matemática",
			Priority:    PriorityHigh,
		},
		{
			ID:          "2",
			Title:       "Trabalho de História",
			Description: "Pesquisa sobre Revolução Industrial",
			Date:        "2024-01-22",
			Time:        "23:59",
			Subject:     "História",
			Priority:    PriorityMedium,
		},
	}
}
