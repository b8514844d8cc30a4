// Package domain defines the persistence models for users, conversations,
// messages, and tags. These types are mapped with GORM and form the data
// layer the search engine queries. The engine itself never mutates them;
// they are owned by the main chat application and treated here as a
// queryable store.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Personality values a conversation's assistant can be configured with.
// The facet aggregator always reports a count for every one of these keys.
const (
	PersonalityHelpful      = "helpful"
	PersonalityConcise      = "concise"
	PersonalityCreative     = "creative"
	PersonalityAnalytical   = "analytical"
	PersonalityEmpathetic   = "empathetic"
	PersonalityProfessional = "professional"
	PersonalityCustom       = "custom"
)

// Personalities lists every known personality key in stable order.
var Personalities = []string{
	PersonalityHelpful,
	PersonalityConcise,
	PersonalityCreative,
	PersonalityAnalytical,
	PersonalityEmpathetic,
	PersonalityProfessional,
	PersonalityCustom,
}

// User is a minimal projection of an account. The search engine only needs
// identity and a display name for participant and sender summaries.
type User struct {
	ID        string    `json:"id"   gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Conversation represents a chat thread. A conversation may be a direct
// chat, a group chat, or an AI chat with a configured personality.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name shown in conversation lists and search results.
//   - IsAI / IsGroup: conversation class flags.
//   - Personality: assistant personality key; empty for human conversations.
//   - UpdatedAt doubles as the last-activity timestamp and drives recency
//     ordering, date facets, and the relevance recency bonus.
//   - Participants: members of the conversation (search scope boundary).
//   - Tags: user-applied labels.
//   - ArchivedBy: users who archived this conversation for themselves.
type Conversation struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string         `json:"name"        gorm:"type:varchar(255);not null;index"`
	IsAI        bool           `json:"is_ai"       gorm:"not null;default:false;index"`
	IsGroup     bool           `json:"is_group"    gorm:"not null;default:false"`
	Personality string         `json:"personality,omitempty" gorm:"type:varchar(32);index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"  gorm:"index"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`

	Participants []User `json:"participants,omitempty" gorm:"many2many:conversation_participants"`
	Tags         []Tag  `json:"tags,omitempty"         gorm:"many2many:conversation_tags"`
	ArchivedBy   []User `json:"-"                      gorm:"many2many:conversation_archives"`
}

// TableName returns the database table name for Conversation.
func (Conversation) TableName() string { return "conversations" }

// Message represents a single utterance within a conversation. Deleted
// messages keep their row (soft delete) but are excluded from search.
//
// ImageURL, when non-nil, marks the message as carrying an attachment and
// feeds the hasAttachments filter and facet count.
type Message struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	ConversationID string         `json:"conversation_id" gorm:"type:char(36);not null;index:idx_conv_msgs,priority:1"`
	SenderID       string         `json:"sender_id"       gorm:"type:char(36);not null;index"`
	Content        string         `json:"content"         gorm:"type:text;not null"`
	IsAI           bool           `json:"is_ai"           gorm:"not null;default:false"`
	ImageURL       *string        `json:"image_url,omitempty" gorm:"type:varchar(512)"`
	CreatedAt      time.Time      `json:"created_at"      gorm:"index:idx_conv_msgs,priority:2"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`

	// Sender and Conversation back the summaries embedded in message
	// search results.
	Sender       User         `json:"-" gorm:"foreignKey:SenderID;references:ID"`
	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Tag is a user-owned label that can be applied to conversations. Tags feed
// the tag filter, the tag facet, and tag suggestions.
type Tag struct {
	ID        string    `json:"id"    gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"-"     gorm:"type:char(36);not null;index"`
	Name      string    `json:"name"  gorm:"type:varchar(64);not null;index"`
	Color     string    `json:"color" gorm:"type:varchar(16);not null;default:'#8884d8'"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for Tag.
func (Tag) TableName() string { return "tags" }
