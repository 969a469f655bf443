package billing

import (
	"context"
	"encoding/json"

	"github.com/naayikhata/khata-go/internal/domain/entity"
	"github.com/naayikhata/khata-go/internal/infrastructure/kvstore"
	"github.com/naayikhata/khata-go/pkg/logger"
)

const (
	draftKeyPrefix = "bill:"
	draftIndexKey  = "bill:index"
	draftIndexCap  = 50
)

// DraftStore is the session-scoped holding area for bills being composed.
// The server-confirmed invoice is the authoritative record, so this cache
// degrades silently: storage failures are logged at debug level and
// otherwise swallowed, corrupted records read as absent, and the recency
// index and the records it points at may transiently disagree.
type DraftStore struct {
	kv  kvstore.Store
	log *logger.Logger
}

// NewDraftStore builds the store on top of any key-value backend.
func NewDraftStore(kv kvstore.Store, log *logger.Logger) *DraftStore {
	if log == nil {
		log = logger.Nop()
	}
	return &DraftStore{kv: kv, log: log}
}

// Save writes the draft keyed by its id and moves the id to the front of
// the recency index, de-duplicating. The index holds at most 50 ids; the
// oldest is dropped silently.
func (s *DraftStore) Save(ctx context.Context, bill *entity.DraftBill) {
	raw, err := json.Marshal(bill)
	if err != nil {
		s.log.Debug().Err(err).Str("bill_id", bill.ID).Msg("draft save: marshal")
		return
	}
	if err := s.kv.Set(ctx, draftKeyPrefix+bill.ID, raw); err != nil {
		s.log.Debug().Err(err).Str("bill_id", bill.ID).Msg("draft save: record")
		return
	}

	index := s.readIndex(ctx)
	next := make([]string, 0, len(index)+1)
	next = append(next, bill.ID)
	for _, id := range index {
		if id != bill.ID {
			next = append(next, id)
		}
	}
	if len(next) > draftIndexCap {
		next = next[:draftIndexCap]
	}
	s.writeIndex(ctx, next)
}

// Load returns the stored draft or nil. Missing and unparsable records are
// both just "not there"; neither is an error.
func (s *DraftStore) Load(ctx context.Context, id string) *entity.DraftBill {
	raw, err := s.kv.Get(ctx, draftKeyPrefix+id)
	if err != nil {
		return nil
	}
	var bill entity.DraftBill
	if err := json.Unmarshal(raw, &bill); err != nil {
		s.log.Debug().Err(err).Str("bill_id", id).Msg("draft load: corrupt record")
		return nil
	}
	return &bill
}

// ListRecent returns up to limit drafts, most recently saved first. Ids in
// the index whose record is missing or corrupted are skipped without
// gap-filling.
func (s *DraftStore) ListRecent(ctx context.Context, limit int) []*entity.DraftBill {
	if limit <= 0 {
		limit = 10
	}
	bills := make([]*entity.DraftBill, 0, limit)
	for _, id := range s.readIndex(ctx) {
		if bill := s.Load(ctx, id); bill != nil {
			bills = append(bills, bill)
		}
		if len(bills) >= limit {
			break
		}
	}
	return bills
}

// Supersede discards the draft after the server has confirmed its invoice.
// One-way: confirmed invoices are never synced back into the cache.
func (s *DraftStore) Supersede(ctx context.Context, id string) {
	if err := s.kv.Delete(ctx, draftKeyPrefix+id); err != nil {
		s.log.Debug().Err(err).Str("bill_id", id).Msg("draft supersede: delete")
	}
	index := s.readIndex(ctx)
	next := index[:0]
	for _, x := range index {
		if x != id {
			next = append(next, x)
		}
	}
	s.writeIndex(ctx, next)
}

func (s *DraftStore) readIndex(ctx context.Context) []string {
	raw, err := s.kv.Get(ctx, draftIndexKey)
	if err != nil {
		return nil
	}
	var index []string
	if err := json.Unmarshal(raw, &index); err != nil {
		s.log.Debug().Err(err).Msg("draft index: corrupt, resetting")
		return nil
	}
	return index
}

func (s *DraftStore) writeIndex(ctx context.Context, index []string) {
	raw, err := json.Marshal(index)
	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, draftIndexKey, raw); err != nil {
		s.log.Debug().Err(err).Msg("draft index: write")
	}
}
