package reconcile

import (
	"slices"
	"sort"
)

// Matcher clusters records that describe the same real-world transaction and
// merges each cluster into one canonical record.
type Matcher struct {
	// DateTolerance is the maximum gap, in days, between two directly
	// matching records. It absorbs posting-date vs transaction-date skew
	// between formats.
	DateTolerance int
	// MaxClusterSize bounds the size above which a cluster is reported as
	// suspicious: transitive closure can chain unrelated same-amount
	// transactions through intermediate records. 0 disables the check.
	MaxClusterSize int
}

const (
	defaultDateTolerance  = 3
	defaultMaxClusterSize = 8
)

// NewMatcher returns a Matcher with the default 3-day tolerance.
func NewMatcher() *Matcher {
	return &Matcher{DateTolerance: defaultDateTolerance, MaxClusterSize: defaultMaxClusterSize}
}

// Cluster is a maximal set of records connected by the duplicate relation.
// Records are kept in canonical order: by date ascending, input order on
// ties. A singleton cluster is a record with no duplicates.
type Cluster struct {
	Signature string
	Records   []Record
}

// Cluster groups records into duplicate clusters. Two records match directly
// when their signatures are equal and their dates are at most DateTolerance
// days apart; clusters are the connected components of that relation, so a
// chain A-B-C joins one cluster even when A and C are further apart than the
// tolerance. Clusters are emitted in input order of their first member.
func (m *Matcher) Cluster(records []Record) []Cluster {
	uf := newUnionFind(len(records))
	sigs := make([]string, len(records))
	buckets := make(map[string][]int)
	for i, r := range records {
		sigs[i] = Signature(r)
		buckets[sigs[i]] = append(buckets[sigs[i]], i)
	}

	// Union order does not affect the resulting components, so the random
	// bucket iteration order is harmless.
	for _, bucket := range buckets {
		if len(bucket) < 2 {
			continue
		}
		idx := slices.Clone(bucket)
		m.sortCanonical(records, idx)
		for i := 0; i < len(idx); i++ {
			for j := i + 1; j < len(idx); j++ {
				if records[idx[j]].Date.Sub(records[idx[i]].Date) > m.DateTolerance {
					break
				}
				uf.union(idx[i], idx[j])
			}
		}
	}

	// Emit clusters deterministically, in input order of their first member.
	members := make(map[int][]int)
	var order []int
	for i := range records {
		root := uf.find(i)
		if _, seen := members[root]; !seen {
			order = append(order, root)
		}
		members[root] = append(members[root], i)
	}

	clusters := make([]Cluster, 0, len(order))
	for _, root := range order {
		idx := members[root]
		m.sortCanonical(records, idx)
		recs := make([]Record, len(idx))
		for k, i := range idx {
			recs[k] = records[i]
		}
		clusters = append(clusters, Cluster{Signature: sigs[root], Records: recs})
	}
	return clusters
}

// sortCanonical orders record indices by date ascending, input order on ties.
func (m *Matcher) sortCanonical(records []Record, idx []int) {
	sort.SliceStable(idx, func(a, b int) bool {
		if records[idx[a]].Date != records[idx[b]].Date {
			return records[idx[a]].Date.Before(records[idx[b]].Date)
		}
		return idx[a] < idx[b]
	})
}

// Merge collapses a cluster into one canonical record.
//
// The merged record takes its core fields from the most complete member: the
// first member carrying a transaction id, or the earliest member otherwise.
// Category and balance come from the first member in canonical order that
// has them. Two distinct transaction ids in one cluster signal a likely
// false-positive match and fail the merge.
func (m *Matcher) Merge(c Cluster) (Record, error) {
	if len(c.Records) == 1 {
		return c.Records[0], nil
	}

	var ids []string
	for _, r := range c.Records {
		if r.TransactionID != "" && !slices.Contains(ids, r.TransactionID) {
			ids = append(ids, r.TransactionID)
		}
	}
	if len(ids) > 1 {
		return Record{}, &MergeConflictError{Signature: c.Signature, TransactionIDs: ids}
	}

	base := c.Records[0]
	for _, r := range c.Records {
		if r.TransactionID != "" {
			base = r
			break
		}
	}

	merged := base
	merged.Category, merged.Balance = "", nil
	for _, r := range c.Records {
		if merged.Category == "" && r.Category != "" {
			merged.Category = r.Category
		}
		if merged.Balance == nil && r.Balance != nil {
			merged.Balance = r.Balance
		}
	}
	if len(ids) == 1 {
		merged.TransactionID = ids[0]
	}
	return merged, nil
}

// unionFind is a classic disjoint-set structure with path compression,
// used to compute the transitive closure of the pairwise duplicate relation.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	// Attach the larger root to the smaller so the cluster root is always
	// the earliest member in input order.
	if ra > rb {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}
