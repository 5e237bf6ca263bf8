package models

// Tables 需要自动迁移的全部表
func Tables() []any {
	return []any{
		&Account{},
		&Project{},
		&Folder{},
		&ProjectMember{},
		&File{},
	}
}
