package models

type ProjectTag struct {
	ProjectID uint64 `gorm:"primarykey" json:"-"`
	Name      string `gorm:"primarykey;type:varchar(30);index" json:"name"`
}
