package sysnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/miekg/dns"

	"github.com/open-control-systems/wasd/components/status"
	"github.com/open-control-systems/wasd/components/storage/stcore"
)

// RecordStore is a static source of DNS-SD records persisted in the database.
//
// Remarks:
//   - Names are compared case-insensitively, with or without the trailing dot.
//   - Records are returned in the order they were added.
type RecordStore struct {
	mu sync.Mutex
	db stcore.DB
}

// NewRecordStore is an initialization of RecordStore.
//
// Parameters:
//   - db to persist records, e.g. stcore.BboltDBBucket or stcore.MemoryDB.
func NewRecordStore(db stcore.DB) *RecordStore {
	return &RecordStore{db: db}
}

// AddPTR adds the pointer record for the name.
func (s *RecordStore) AddPTR(name string, record PTRRecord) error {
	return addRecord(s, RecordTypePTR, name, record)
}

// AddSRV adds the service record for the name.
func (s *RecordStore) AddSRV(name string, record SRVRecord) error {
	return addRecord(s, RecordTypeSRV, name, record)
}

// AddTXT adds the text record for the name.
func (s *RecordStore) AddTXT(name string, record TXTRecord) error {
	return addRecord(s, RecordTypeTXT, name, record)
}

// Remove removes all records of the type for the name.
func (s *RecordStore) Remove(recordType RecordType, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Remove(recordKey(recordType, name))
}

// LookupPTR returns pointer records for the name.
func (s *RecordStore) LookupPTR(_ context.Context, name string) ([]PTRRecord, error) {
	return readRecords[PTRRecord](s, RecordTypePTR, name)
}

// LookupSRV returns service records for the name.
func (s *RecordStore) LookupSRV(_ context.Context, name string) ([]SRVRecord, error) {
	return readRecords[SRVRecord](s, RecordTypeSRV, name)
}

// LookupTXT returns text records for the name.
func (s *RecordStore) LookupTXT(_ context.Context, name string) ([]TXTRecord, error) {
	return readRecords[TXTRecord](s, RecordTypeTXT, name)
}

func addRecord[T any](s *RecordStore, recordType RecordType, name string, record T) error {
	if name == "" {
		return fmt.Errorf("record-store: empty name: %w", status.StatusInvalidArg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := readLocked[T](s, recordType, name)
	if err != nil {
		return err
	}

	buf, err := json.Marshal(append(records, record))
	if err != nil {
		return err
	}

	if err := s.db.Write(recordKey(recordType, name), stcore.Blob{Data: buf}); err != nil {
		return fmt.Errorf("record-store: failed to write record: type=%s name=%s err=%w",
			recordType, name, err)
	}

	return nil
}

func readRecords[T any](s *RecordStore, recordType RecordType, name string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return readLocked[T](s, recordType, name)
}

func readLocked[T any](s *RecordStore, recordType RecordType, name string) ([]T, error) {
	blob, err := s.db.Read(recordKey(recordType, name))
	if err != nil {
		if errors.Is(err, status.StatusNoData) {
			return nil, nil
		}

		return nil, fmt.Errorf("record-store: failed to read record: type=%s name=%s err=%w",
			recordType, name, err)
	}

	var records []T
	if err := json.Unmarshal(blob.Data, &records); err != nil {
		return nil, fmt.Errorf("record-store: malformed record: type=%s name=%s err=%w",
			recordType, name, err)
	}

	return records, nil
}

func recordKey(recordType RecordType, name string) string {
	return recordType.String() + "/" + dns.CanonicalName(name)
}
