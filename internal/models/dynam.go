package models

import "time"

// Interaction kinds recorded in the activity ledger.
const (
	DynamKindView = "pv"
	DynamKindLike = "like"
)

// Target types.
const (
	TargetTypePost = "post"
)

// Dynam is one aggregated interaction: the latest time Actor viewed or liked
// a target. (actor_id, target_type, target_id, kind) is unique; rows with a
// NULL actor are anonymous views and never collide with each other.
type Dynam struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ActorID        *uint     `gorm:"uniqueIndex:idx_dynam_key,priority:1" json:"userid,omitempty"`
	ActorName      string    `gorm:"size:64" json:"nickName,omitempty"`
	ActorAvatar    string    `json:"avatarFile,omitempty"`
	TargetAuthorID uint      `gorm:"not null;index:idx_dynam_author" json:"targetAuthorId"`
	TargetType     string    `gorm:"size:32;not null;uniqueIndex:idx_dynam_key,priority:2;index:idx_dynam_target,priority:1" json:"targetType"`
	TargetID       uint      `gorm:"not null;uniqueIndex:idx_dynam_key,priority:3;index:idx_dynam_target,priority:2" json:"targetId"`
	Kind           string    `gorm:"size:16;not null;uniqueIndex:idx_dynam_key,priority:4;index:idx_dynam_target,priority:3" json:"kind"`
	At             time.Time `gorm:"not null;index" json:"at"`
	CreatedAt      time.Time `json:"createTime"`
}

// ValidDynamKind reports whether kind is one the ledger records.
func ValidDynamKind(kind string) bool {
	return kind == DynamKindView || kind == DynamKindLike
}
