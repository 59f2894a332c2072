package models

// All returns one zero value of every persisted model, in migration order.
func All() []any {
	return []any{
		&Contact{},
		&Project{},
		&SkillCategory{},
	}
}
