package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/btouchard/monkey/internal/compiler/ast"
	"github.com/btouchard/monkey/internal/compiler/token"
)

// ========== Models ==========

// Session is one lexed or parsed input, as typed at the REPL or passed to the CLI.
type Session struct {
	ID             string        `gorm:"primaryKey" json:"id" yaml:"id"`
	Source         string        `json:"source" yaml:"source"`
	Mode           string        `gorm:"index" json:"mode" yaml:"mode"`
	TokenCount     int           `json:"tokenCount" yaml:"tokenCount"`
	StatementCount int           `json:"statementCount" yaml:"statementCount"`
	ErrorCount     int           `json:"errorCount" yaml:"errorCount"`
	CreatedAt      time.Time     `gorm:"index" json:"createdAt" yaml:"createdAt"`
	Tokens         []TokenRecord `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// TokenRecord is a single token of a session, in scan order.
type TokenRecord struct {
	ID        uint   `gorm:"primaryKey" json:"-" yaml:"-"`
	SessionID string `gorm:"index;not null" json:"-" yaml:"-"`
	Seq       int    `json:"seq" yaml:"seq"`
	Type      string `json:"type" yaml:"type"`
	Literal   string `json:"literal" yaml:"literal"`
	Line      int    `json:"line" yaml:"line"`
	Column    int    `json:"column" yaml:"column"`
}

// BeforeCreate is a GORM hook that assigns the session ID
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Token converts the record back into a lexer token.
func (r TokenRecord) Token() token.Token {
	return token.Token{
		Type:    token.TokenType(r.Type),
		Literal: r.Literal,
		Pos:     token.Position{Line: r.Line, Column: r.Column},
	}
}

// ========== Store ==========

// Store journals sessions in a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the database file at path, creating parent
// directories as needed. Every pooled connection must see the same tables,
// so path names a file on disk.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := db.AutoMigrate(&Session{}, &TokenRecord{}); err != nil {
		return nil, fmt.Errorf("migrating store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record saves a session with its tokens. prog may be nil for lex-only
// sessions.
func (s *Store) Record(ctx context.Context, source, mode string, toks []token.Token, prog *ast.Program, errCount int) (*Session, error) {
	session := &Session{
		Source:     source,
		Mode:       mode,
		TokenCount: len(toks),
		ErrorCount: errCount,
		Tokens:     make([]TokenRecord, 0, len(toks)),
	}
	if prog != nil {
		session.StatementCount = len(prog.Statements)
	}
	for i, tok := range toks {
		session.Tokens = append(session.Tokens, TokenRecord{
			Seq:     i,
			Type:    string(tok.Type),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		})
	}

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("recording session: %w", err)
	}
	return session, nil
}

// Recent returns the latest sessions without their tokens, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Session, error) {
	var sessions []Session
	q := s.db.WithContext(ctx).Order("created_at DESC").Order("rowid DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

// Get loads one session with its tokens in scan order.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	err := s.db.WithContext(ctx).
		Preload("Tokens", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return &session, nil
}

// Delete removes a session and its tokens.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&TokenRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Session{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
