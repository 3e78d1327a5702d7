// Package repository provides the data access layer for BlogAPI.
// This file contains the aggregate types shared by the driver packages.
package repository

import (
	"context"
)

// Repositories holds one gateway per entity plus the transaction
// manager that scopes multi-gateway writes. Driver packages (sqlite,
// postgres) each provide a constructor returning a fully wired set.
type Repositories struct {
	User    UserRepository
	Blog    BlogRepository
	Tag     TagRepository
	Comment CommentRepository
	BlogTag BlogTagRepository
	Tx      TxManager
}

// DatabaseHealth is an interface for database health checks.
// Satisfied by both driver DB types; used by the health endpoint and
// for shutdown.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Close() error
}
