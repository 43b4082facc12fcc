package client

import "github.com/akshat1423/memoire/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Domain entities
	Entry     = types.Entry
	EntryType = types.EntryType
	Metadata  = types.Metadata
	Mood      = types.Mood
	Location  = types.Location

	// Requests
	SearchFilters   = types.SearchFilters
	BatchUpdateItem = types.BatchUpdateItem
	BatchDeleteItem = types.BatchDeleteItem

	// Responses
	StoreUser     = types.StoreUser
	UsersResponse = types.UsersResponse
)

// Entry type discriminants.
const (
	EntryTypeText         = types.EntryTypeText
	EntryTypeImage        = types.EntryTypeImage
	EntryTypeAudio        = types.EntryTypeAudio
	EntryTypeStoredImages = types.EntryTypeStoredImages
	EntryTypeUnknown      = types.EntryTypeUnknown
)

// LowConfidenceScore is the relevance cutoff used by SearchPager.
const LowConfidenceScore = types.LowConfidenceScore
