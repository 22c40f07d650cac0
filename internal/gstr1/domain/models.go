package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// FiledReturn is one persisted generation result. The document is stored
// verbatim so a later download returns exactly the bytes produced at
// generation time.
type FiledReturn struct {
	ID        snowflake.ID   `json:"id,string" gorm:"primaryKey"`
	ClientID  snowflake.ID   `json:"client_id,string" gorm:"not null;index:ix_filed_returns_client,priority:1"`
	Month     int            `json:"month" gorm:"not null;index:ix_filed_returns_client,priority:3"`
	Year      int            `json:"year" gorm:"not null;index:ix_filed_returns_client,priority:2"`
	FileName  string         `json:"file_name" gorm:"not null"`
	Document  datatypes.JSON `json:"document" gorm:"not null"`
	Metadata  datatypes.JSON `json:"metadata" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
}

func (FiledReturn) TableName() string { return "filed_returns" }
