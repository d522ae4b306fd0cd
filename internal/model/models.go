package model

// All 需要建表的全部模型，AutoMigrate 与测试共用
func All() []any {
	return []any{
		&User{},
		&Follow{},
		&Fan{},
		&Block{},
		&PrivacySetting{},
		&AnonPrivacySetting{},
		&TrainingStatus{},
		&Notice{},
		&NoticeAssignment{},
	}
}
