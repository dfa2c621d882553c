package voxel

// Stats summarizes bucket occupancy.
type Stats struct {
	Buckets       int
	Entries       int
	MaxBucketSize int
}

// MeanBucketSize returns the average number of ids per materialized bucket.
func (s Stats) MeanBucketSize() float64 {
	if s.Buckets == 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.Buckets)
}

// Store is a sparse voxel -> ids map plus per-primitive occupancy lists.
type Store struct {
	buckets   map[int32][]int32
	occupancy [][]int32
}

// NewStore creates an empty store with room for numOccupants occupancy lists.
func NewStore(numOccupants int) *Store {
	return &Store{
		buckets:   make(map[int32][]int32),
		occupancy: make([][]int32, numOccupants),
	}
}

// Add appends id to the bucket of voxel v.
func (s *Store) Add(v, id int32) {
	s.buckets[v] = append(s.buckets[v], id)
}

// Bucket returns the ids in voxel v. The slice must not be modified.
func (s *Store) Bucket(v int32) []int32 {
	if s == nil {
		return nil
	}
	return s.buckets[v]
}

// SetOccupancy records the voxels occupied by id and adds id to their buckets.
func (s *Store) SetOccupancy(id int32, voxels []int32) {
	s.occupancy[id] = voxels
	for _, v := range voxels {
		s.Add(v, id)
	}
}

// Occupancy returns the voxels recorded for id, or nil if none were.
func (s *Store) Occupancy(id int32) []int32 {
	if s == nil || id < 0 || int(id) >= len(s.occupancy) {
		return nil
	}
	return s.occupancy[id]
}

// Len returns the number of materialized buckets.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.buckets)
}

// Clear drops all buckets and occupancy lists.
func (s *Store) Clear() {
	if s == nil {
		return
	}
	clear(s.buckets)
	s.occupancy = nil
}

// Stats returns occupancy statistics.
func (s *Store) Stats() Stats {
	var st Stats
	if s == nil {
		return st
	}
	st.Buckets = len(s.buckets)
	for _, b := range s.buckets {
		st.Entries += len(b)
		if len(b) > st.MaxBucketSize {
			st.MaxBucketSize = len(b)
		}
	}
	return st
}
