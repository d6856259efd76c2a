package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. Author display fields are a
// snapshot, like Post's.
type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	PostID     uint           `gorm:"not null;index:idx_comment_post,priority:1" json:"postid"`
	UserID     uint           `gorm:"not null" json:"userid"`
	NickName   string         `gorm:"size:64" json:"nickName"`
	AvatarFile string         `json:"avatarFile"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time      `gorm:"index:idx_comment_post,priority:2" json:"createTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
