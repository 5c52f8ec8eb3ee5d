package vaultfile

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the payload encoding. They are part of the file format
// and must never be renumbered.
const (
	payloadMeta  protowire.Number = 1
	payloadGroup protowire.Number = 2
	payloadItem  protowire.Number = 3

	metaVersion    protowire.Number = 1
	metaCreatedAt  protowire.Number = 2
	metaModifiedAt protowire.Number = 3

	groupID        protowire.Number = 1
	groupName      protowire.Number = 2
	groupParentID  protowire.Number = 3
	groupCreatedAt protowire.Number = 4

	itemID         protowire.Number = 1
	itemGroupID    protowire.Number = 2
	itemTitle      protowire.Number = 3
	itemUsername   protowire.Number = 4
	itemPassword   protowire.Number = 5
	itemURL        protowire.Number = 6
	itemNotes      protowire.Number = 7
	itemTag        protowire.Number = 8
	itemHistory    protowire.Number = 9
	itemCreatedAt  protowire.Number = 10
	itemModifiedAt protowire.Number = 11

	historyPassword  protowire.Number = 1
	historyChangedAt protowire.Number = 2

	timeSeconds protowire.Number = 1
	timeNanos   protowire.Number = 2
)

var (
	errWireType   = errors.New("unexpected wire type")
	errNanosRange = errors.New("nanoseconds out of range")
)

// encodePayload serializes p. Fields are written in ascending order and
// zero values are skipped, so equal payloads always encode to equal bytes.
func encodePayload(p *models.VaultPayload) []byte {
	var b []byte
	b = appendMessage(b, payloadMeta, encodeMeta(p.Meta))
	for _, g := range p.Groups {
		b = appendMessage(b, payloadGroup, encodeGroup(g))
	}
	for _, it := range p.Items {
		b = appendMessage(b, payloadItem, encodeItem(it))
	}
	return b
}

func encodeMeta(m models.VaultMeta) []byte {
	var b []byte
	b = appendVarint(b, metaVersion, uint64(m.Version))
	b = appendTime(b, metaCreatedAt, m.CreatedAt)
	b = appendTime(b, metaModifiedAt, m.ModifiedAt)
	return b
}

func encodeGroup(g models.Group) []byte {
	var b []byte
	b = appendUUID(b, groupID, &g.ID)
	b = appendString(b, groupName, g.Name)
	b = appendUUID(b, groupParentID, g.ParentID)
	b = appendTime(b, groupCreatedAt, g.CreatedAt)
	return b
}

func encodeItem(it models.Item) []byte {
	var b []byte
	b = appendUUID(b, itemID, &it.ID)
	b = appendUUID(b, itemGroupID, it.GroupID)
	b = appendString(b, itemTitle, it.Title)
	b = appendString(b, itemUsername, it.Username)
	b = appendString(b, itemPassword, it.Password)
	b = appendString(b, itemURL, it.URL)
	b = appendString(b, itemNotes, it.Notes)
	for _, tag := range it.Tags {
		b = protowire.AppendTag(b, itemTag, protowire.BytesType)
		b = protowire.AppendString(b, tag)
	}
	for _, h := range it.PasswordHistory {
		var hb []byte
		hb = appendString(hb, historyPassword, h.Password)
		hb = appendTime(hb, historyChangedAt, h.ChangedAt)
		b = appendMessage(b, itemHistory, hb)
	}
	b = appendTime(b, itemCreatedAt, it.CreatedAt)
	b = appendTime(b, itemModifiedAt, it.ModifiedAt)
	return b
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendUUID(b []byte, num protowire.Number, id *uuid.UUID) []byte {
	if id == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, id[:])
}

// appendTime stores t as a nested message of Unix seconds (zigzag) and
// nanoseconds, so every representable time survives a round trip. The zero
// time is omitted.
func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	var tb []byte
	if sec := t.Unix(); sec != 0 {
		tb = protowire.AppendTag(tb, timeSeconds, protowire.VarintType)
		tb = protowire.AppendVarint(tb, protowire.EncodeZigZag(sec))
	}
	if nsec := t.Nanosecond(); nsec != 0 {
		tb = protowire.AppendTag(tb, timeNanos, protowire.VarintType)
		tb = protowire.AppendVarint(tb, uint64(nsec))
	}
	return appendMessage(b, num, tb)
}

// decodePayload is the inverse of encodePayload. Unknown fields are skipped.
func decodePayload(b []byte) (*models.VaultPayload, error) {
	p := &models.VaultPayload{}
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case payloadMeta:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			p.Meta, err = decodeMeta(v)
			return n, err
		case payloadGroup:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			g, err := decodeGroup(v)
			p.Groups = append(p.Groups, g)
			return n, err
		case payloadItem:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			it, err := decodeItem(v)
			p.Items = append(p.Items, it)
			return n, err
		}
		return skip(num, typ, b)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func decodeMeta(b []byte) (models.VaultMeta, error) {
	var m models.VaultMeta
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case metaVersion:
			v, n, err := consumeVarint(typ, b)
			m.Version = uint32(v)
			return n, err
		case metaCreatedAt:
			return consumeTime(typ, b, &m.CreatedAt)
		case metaModifiedAt:
			return consumeTime(typ, b, &m.ModifiedAt)
		}
		return skip(num, typ, b)
	})
	return m, err
}

func decodeGroup(b []byte) (models.Group, error) {
	var g models.Group
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case groupID:
			return consumeUUID(typ, b, &g.ID)
		case groupName:
			return consumeString(typ, b, &g.Name)
		case groupParentID:
			g.ParentID = new(uuid.UUID)
			return consumeUUID(typ, b, g.ParentID)
		case groupCreatedAt:
			return consumeTime(typ, b, &g.CreatedAt)
		}
		return skip(num, typ, b)
	})
	return g, err
}

func decodeItem(b []byte) (models.Item, error) {
	var it models.Item
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case itemID:
			return consumeUUID(typ, b, &it.ID)
		case itemGroupID:
			it.GroupID = new(uuid.UUID)
			return consumeUUID(typ, b, it.GroupID)
		case itemTitle:
			return consumeString(typ, b, &it.Title)
		case itemUsername:
			return consumeString(typ, b, &it.Username)
		case itemPassword:
			return consumeString(typ, b, &it.Password)
		case itemURL:
			return consumeString(typ, b, &it.URL)
		case itemNotes:
			return consumeString(typ, b, &it.Notes)
		case itemTag:
			var tag string
			n, err := consumeString(typ, b, &tag)
			it.Tags = append(it.Tags, tag)
			return n, err
		case itemHistory:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			h, err := decodeHistory(v)
			it.PasswordHistory = append(it.PasswordHistory, h)
			return n, err
		case itemCreatedAt:
			return consumeTime(typ, b, &it.CreatedAt)
		case itemModifiedAt:
			return consumeTime(typ, b, &it.ModifiedAt)
		}
		return skip(num, typ, b)
	})
	return it, err
}

func decodeHistory(b []byte) (models.PasswordHistoryEntry, error) {
	var h models.PasswordHistoryEntry
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case historyPassword:
			return consumeString(typ, b, &h.Password)
		case historyChangedAt:
			return consumeTime(typ, b, &h.ChangedAt)
		}
		return skip(num, typ, b)
	})
	return h, err
}

// walk calls fn for every field in b. fn receives the bytes following the
// tag and returns how many of them it consumed.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		b = b[m:]
	}
	return nil
}

func skip(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, errWireType
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, errWireType
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, error) {
	v, n, err := consumeBytes(typ, b)
	if err != nil {
		return 0, err
	}
	*dst = string(v)
	return n, nil
}

func consumeUUID(typ protowire.Type, b []byte, dst *uuid.UUID) (int, error) {
	v, n, err := consumeBytes(typ, b)
	if err != nil {
		return 0, err
	}
	id, err := uuid.FromBytes(v)
	if err != nil {
		return 0, err
	}
	*dst = id
	return n, nil
}

func consumeTime(typ protowire.Type, b []byte, dst *time.Time) (int, error) {
	v, n, err := consumeBytes(typ, b)
	if err != nil {
		return 0, err
	}

	var sec, nsec int64
	err = walk(v, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case timeSeconds:
			x, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			sec = protowire.DecodeZigZag(x)
			return n, nil
		case timeNanos:
			x, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			if x >= uint64(time.Second) {
				return 0, errNanosRange
			}
			nsec = int64(x)
			return n, nil
		default:
			return skip(num, typ, b)
		}
	})
	if err != nil {
		return 0, err
	}

	*dst = time.Unix(sec, nsec).UTC()
	return n, nil
}
