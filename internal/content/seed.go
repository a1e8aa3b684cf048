package content

import "hash/fnv"

// VariantSeed derives the phrasing-variant seed for one section of one page
// from stable identifiers only. Phrasing therefore varies across pages but
// is identical for the same page across rebuilds. Ambient randomness is
// never used for variant selection.
func VariantSeed(locationSlug, serviceSlug string, section SectionKind) int64 {
	h := fnv.New64a()
	h.Write([]byte(locationSlug))
	h.Write([]byte{'|'})
	h.Write([]byte(serviceSlug))
	h.Write([]byte{'|'})
	h.Write([]byte(section))
	return int64(h.Sum64())
}
