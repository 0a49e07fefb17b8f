package service

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/avoronov/go-cv-builder/internal/utils"
)

// itemRecord constrains a sub-entity pointer type to the identifier
// accessors promoted from models.ItemMeta.
type itemRecord[T any] interface {
	*T
	ItemID() string
	SetItemID(id string)
}

// appendItem adds item to list with a freshly minted identifier and returns
// the grown list together with the new ID. An identifier already present on
// the item is discarded so that IDs are never reused within a document.
func appendItem[T any, PT itemRecord[T]](gen *utils.UUIDGenerator, list []T, item T) ([]T, string) {
	id := gen.Generate()
	PT(&item).SetItemID(id)
	return append(list, item), id
}

// mergeItem shallow-merges the non-zero fields of patch into the record
// with the given ID. It reports whether a record was found; an unknown ID
// leaves the list untouched.
func mergeItem[T any, PT itemRecord[T]](list []T, id string, patch T) (bool, error) {
	for i := range list {
		if PT(&list[i]).ItemID() != id {
			continue
		}

		PT(&patch).SetItemID(id)
		if err := mergo.Merge(&list[i], patch, mergo.WithOverride); err != nil {
			return false, fmt.Errorf("merge item %s: %w", id, err)
		}
		return true, nil
	}

	return false, nil
}

// filterItem removes the record with the given ID. Absent IDs are a no-op,
// so removal is idempotent.
func filterItem[T any, PT itemRecord[T]](list []T, id string) []T {
	out := list[:0]
	for i := range list {
		if PT(&list[i]).ItemID() != id {
			out = append(out, list[i])
		}
	}
	return out
}

// backfillItemIDs assigns a fresh identifier to every record that lacks
// one. Records that already carry an ID keep it, which makes a re-import of
// the same payload stable.
func backfillItemIDs[T any, PT itemRecord[T]](gen *utils.UUIDGenerator, list []T) {
	for i := range list {
		if PT(&list[i]).ItemID() == "" {
			PT(&list[i]).SetItemID(gen.Generate())
		}
	}
}
