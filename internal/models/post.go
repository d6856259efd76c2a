package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Post kinds.
const (
	PostTypeSay = "say"
)

// Post is a short publication. The author fields are copied from the user at
// publish time and are never refreshed afterwards.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"userid"`
	OpenID      string         `gorm:"size:64" json:"-"`
	NickName    string         `gorm:"size:64" json:"nickName"`
	AvatarFile  string         `json:"avatarFile"`
	City        string         `gorm:"size:64" json:"city"`
	Gender      int            `json:"gender"`
	Country     string         `gorm:"size:64" json:"country"`
	Type        string         `gorm:"size:32;not null;default:say;index" json:"type"`
	Content     string         `gorm:"type:text" json:"content"`
	Images      StringSlice    `json:"images"`
	Task        JSONMap        `json:"task,omitempty"`
	Eit         string         `json:"eit,omitempty"`
	Coordinates FloatSlice     `json:"coordinates,omitempty"`
	PosName     string         `json:"posName,omitempty"`
	Views       int64          `gorm:"not null;default:0" json:"pv"`
	CreatedAt   time.Time      `gorm:"index" json:"createTime"`
	UpdatedAt   time.Time      `json:"updateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasBody reports whether the post carries text or at least one image.
func (p *Post) HasBody() bool {
	return strings.TrimSpace(p.Content) != "" || len(p.Images) > 0
}

// PostDetail is the assembled "view a post" response.
type PostDetail struct {
	*Post
	PvList      []*Dynam   `json:"pvList"`
	LikeList    []*Dynam   `json:"likeList"`
	CommentList []*Comment `json:"commentList"`
	Like        bool       `json:"like"`
}
