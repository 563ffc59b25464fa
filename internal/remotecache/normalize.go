package remotecache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"rdoc/internal/docgraph"
)

// decoderPool amortizes zstd.NewReader's table allocation across fetches;
// grounded on klauspost/compress's own documented pattern of reusing
// decoders rather than constructing one per call.
var decoderPool = sync.Pool{
	New: func() interface{} {
		d, err := zstd.NewReader(nil)
		if err != nil {
			panic(err) // only fails on bad options, which we don't pass
		}
		return d
	},
}

func decompressZstd(compressed []byte) ([]byte, error) {
	d := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(d)

	if err := d.Reset(bytes.NewReader(compressed)); err != nil {
		return nil, err
	}
	out, err := io.ReadAll(d)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}

// rawStoreData mirrors the on-wire shape of older graph format versions,
// where external_crates may be entirely absent (§4.E: "a docs host may
// still be serving a one-version-back format; normalize it to the
// current shape rather than rejecting it outright").
type rawStoreData struct {
	FormatVersion  int                             `json:"format_version"`
	CrateName      string                           `json:"crate_name"`
	Version        string                           `json:"version"`
	ArtifactPath   string                           `json:"artifact_path"`
	RootID         uint32                           `json:"root_id"`
	Index          map[string]*docgraph.Item        `json:"index"`
	Paths          map[string]docgraph.ItemSummary  `json:"paths"`
	ExternalCrates map[string]docgraph.ExternalCrate `json:"external_crates"`
}

// Normalize widens a decompressed payload of the given embedded format
// version into the current docgraph.StoreData shape. Index/paths/
// external-crates keys travel as JSON object keys (strings) on the wire
// and are parsed back to uint32 ids here.
func Normalize(raw []byte, embeddedFormat int) (docgraph.StoreData, error) {
	var parsed rawStoreData
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return docgraph.StoreData{}, fmt.Errorf("remotecache: normalize: %w", err)
	}

	index := make(map[uint32]*docgraph.Item, len(parsed.Index))
	for k, v := range parsed.Index {
		id, err := parseUint32(k)
		if err != nil {
			continue
		}
		index[id] = v
	}
	paths := make(map[uint32]docgraph.ItemSummary, len(parsed.Paths))
	for k, v := range parsed.Paths {
		id, err := parseUint32(k)
		if err != nil {
			continue
		}
		paths[id] = v
	}
	externalCrates := make(map[uint32]docgraph.ExternalCrate, len(parsed.ExternalCrates))
	for k, v := range parsed.ExternalCrates {
		id, err := parseUint32(k)
		if err != nil {
			continue
		}
		externalCrates[id] = v
	}

	return docgraph.StoreData{
		FormatVersion:  docgraph.CurrentFormatVersion, // normalized: caller only ever sees the current shape
		CrateName:      parsed.CrateName,
		Version:        parsed.Version,
		Provenance:     docgraph.ProvenanceRemote,
		ArtifactPath:   parsed.ArtifactPath,
		RootID:         parsed.RootID,
		Index:          index,
		Paths:          paths,
		ExternalCrates: externalCrates,
	}, nil
}

func parseUint32(s string) (uint32, error) {
	var n uint64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a uint32: %q", s)
		}
		n = n*10 + uint64(c-'0')
	}
	return uint32(n), nil
}
