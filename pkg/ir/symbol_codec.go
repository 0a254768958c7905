package ir

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"

	"github.com/GrammaTech/gtirb-go/pkg/gtirberrors"
	"github.com/GrammaTech/gtirb-go/pkg/version"
)

type symbolRecord struct {
	Value        *uint64     `json:"value,omitempty"`
	ReferentUUID *uuid.UUID  `json:"referent_uuid,omitempty"`
	Name         string      `json:"name"`
	UUID         uuid.UUID   `json:"uuid"`
	StorageKind  StorageKind `json:"storage_kind"`
}

type symbolDocument struct {
	GTIRBVersion string         `json:"gtirb_version"`
	Symbols      []symbolRecord `json:"symbols"`
}

// EncodeSymbols writes syms to w as a YAML document stamped with the
// producing library version.
func EncodeSymbols(w io.Writer, syms []*Symbol) error {
	doc := symbolDocument{
		GTIRBVersion: version.String,
		Symbols:      make([]symbolRecord, 0, len(syms)),
	}

	for _, s := range syms {
		rec := symbolRecord{
			UUID:        s.UUID(),
			Name:        s.Name,
			StorageKind: s.StorageKind,
		}

		if v, ok := s.Value(); ok {
			rec.Value = &v
		} else if n, ok := s.Referent(); ok {
			id := n.UUID()
			rec.ReferentUUID = &id
		}

		doc.Symbols = append(doc.Symbols, rec)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", gtirberrors.ErrYAMLMarshal, err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %w", gtirberrors.ErrWrite, err)
	}

	return nil
}

// DecodeSymbols reads a document written by [EncodeSymbols]. Decoded symbols
// are added to reg, and referents are resolved through it, so a symbol may
// refer to another symbol in the same document. On error nothing decoded is
// left registered.
func DecodeSymbols(r io.Reader, reg *Registry) (_ []*Symbol, err error) {
	data, readErr := io.ReadAll(r)
	if readErr != nil {
		return nil, fmt.Errorf("read symbols: %w", readErr)
	}

	doc := symbolDocument{}
	if yamlErr := yaml.UnmarshalStrict(data, &doc); yamlErr != nil {
		return nil, fmt.Errorf("%w: %w", gtirberrors.ErrYAMLUnmarshal, yamlErr)
	}

	slog.Debug("decoding symbols",
		"gtirb_version", doc.GTIRBVersion,
		"count", len(doc.Symbols),
	)

	syms := make([]*Symbol, 0, len(doc.Symbols))

	defer func() {
		if err != nil {
			for _, s := range syms {
				reg.Remove(s.UUID())
			}
		}
	}()

	for _, rec := range doc.Symbols {
		if rec.Value != nil && rec.ReferentUUID != nil {
			return nil, fmt.Errorf("symbol %s: %w: both value and referent are set", rec.UUID, ErrInvalidPayload)
		}

		s := NewSymbol(rec.Name, WithUUID(rec.UUID), WithStorageKind(rec.StorageKind))
		if rec.Value != nil {
			s.SetValue(*rec.Value)
		}

		if addErr := reg.Add(s); addErr != nil {
			return nil, fmt.Errorf("symbol %s: %w", rec.UUID, addErr)
		}

		syms = append(syms, s)
	}

	for i, rec := range doc.Symbols {
		if rec.ReferentUUID == nil {
			continue
		}

		n, getErr := reg.Get(*rec.ReferentUUID)
		if getErr != nil {
			return nil, fmt.Errorf("symbol %s: referent: %w", rec.UUID, getErr)
		}

		syms[i].SetReferent(n)
	}

	return syms, nil
}
