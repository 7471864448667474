package analysis

import (
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Cluster is one K-means group of related keywords.
type Cluster struct {
	ID       int      `json:"cluster_id"`
	Keywords []string `json:"keywords"`
	Theme    string   `json:"theme"`
	Size     int      `json:"size"`
}

const (
	maxKMeansIterations = 100
	clusterSeed         = 42
)

// DefaultClusterCount picks k for n keywords the same way the dashboard
// does: roughly one cluster per three keywords, between 2 and 8.
func DefaultClusterCount(n int) int {
	k := n / 3
	if k < 2 {
		k = 2
	}
	if k > 8 {
		k = 8
	}
	if k < 1 {
		k = 1
	}
	return k
}

// ClusterKeywords groups keywords by TF-IDF similarity using K-means.
// k <= 0 selects DefaultClusterCount. k larger than the input is reduced.
// An empty input returns an empty slice; a single keyword returns one
// cluster. Results are deterministic for identical inputs.
func ClusterKeywords(keywords []string, k int) []Cluster {
	n := len(keywords)
	if n == 0 {
		return []Cluster{}
	}
	if n == 1 {
		return []Cluster{{ID: 0, Keywords: keywords, Theme: "single keyword", Size: 1}}
	}
	if k <= 0 {
		k = DefaultClusterCount(n)
	}
	if k > n {
		k = n
	}

	vectorizer := NewVectorizer(1000)
	vectors := vectorizer.FitTransform(keywords)
	terms := vectorizer.FeatureNames()
	if len(terms) == 0 {
		// Nothing but stop words; no basis for splitting.
		return []Cluster{{ID: 0, Keywords: keywords, Theme: "unclustered", Size: n}}
	}

	labels, centroids := kmeans(vectors, k)

	grouped := map[int][]string{}
	for i, kw := range keywords {
		grouped[labels[i]] = append(grouped[labels[i]], kw)
	}

	clusters := make([]Cluster, 0, len(grouped))
	for id, members := range grouped {
		clusters = append(clusters, Cluster{
			ID:       id,
			Keywords: members,
			Theme:    centroidTheme(centroids[id], terms),
			Size:     len(members),
		})
	}
	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].Size != clusters[j].Size {
			return clusters[i].Size > clusters[j].Size
		}
		return clusters[i].ID < clusters[j].ID
	})
	return clusters
}

// kmeans runs Lloyd's algorithm with k-means++ seeding on unit vectors,
// using cosine distance. The RNG is fixed-seeded so clustering the same
// keyword list twice yields the same grouping.
func kmeans(vectors [][]float64, k int) ([]int, [][]float64) {
	rng := rand.New(rand.NewSource(clusterSeed))
	dim := len(vectors[0])

	centroids := seedCentroids(vectors, k, rng)
	labels := make([]int, len(vectors))

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, vec := range vectors {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				d := 1 - cosine(vec, centroid)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, vec := range vectors {
			c := labels[i]
			counts[c]++
			for j, x := range vec {
				next[c][j] += x
			}
		}
		for c := range next {
			if counts[c] == 0 {
				// Empty cluster keeps its previous centroid.
				next[c] = centroids[c]
				continue
			}
			for j := range next[c] {
				next[c][j] /= float64(counts[c])
			}
		}
		centroids = next
	}
	return labels, centroids
}

// seedCentroids implements k-means++ initialization.
func seedCentroids(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, vectors[rng.Intn(len(vectors))])

	for len(centroids) < k {
		dists := make([]float64, len(vectors))
		var total float64
		for i, vec := range vectors {
			min := math.Inf(1)
			for _, c := range centroids {
				if d := 1 - cosine(vec, c); d < min {
					min = d
				}
			}
			dists[i] = min * min
			total += dists[i]
		}
		if total == 0 {
			// All points coincide with existing centroids; reuse any.
			centroids = append(centroids, vectors[rng.Intn(len(vectors))])
			continue
		}
		target := rng.Float64() * total
		var acc float64
		pick := len(vectors) - 1
		for i, d := range dists {
			acc += d
			if acc >= target {
				pick = i
				break
			}
		}
		centroids = append(centroids, vectors[pick])
	}
	return centroids
}

// centroidTheme labels a cluster with its three strongest terms.
func centroidTheme(centroid []float64, terms []string) string {
	type weighted struct {
		term   string
		weight float64
	}
	var ws []weighted
	for i, w := range centroid {
		if w > 0 {
			ws = append(ws, weighted{terms[i], w})
		}
	}
	if len(ws) == 0 {
		return "unclustered"
	}
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].weight != ws[j].weight {
			return ws[i].weight > ws[j].weight
		}
		return ws[i].term < ws[j].term
	})
	top := len(ws)
	if top > 3 {
		top = 3
	}
	parts := make([]string, top)
	for i := 0; i < top; i++ {
		parts[i] = ws[i].term
	}
	return strings.Join(parts, " + ")
}
