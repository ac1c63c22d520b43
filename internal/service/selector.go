package service

import (
	"math/rand"
	"movie_tracker_backend/internal/model"
	"sync"
	"time"
)

// revenueTier 票房分档，min 含、max 不含；负值表示无界
type revenueTier struct {
	name   string
	min    int64
	max    int64
	weight int
}

// 档位权重偏向高票房影片，同时保留冷门片的曝光机会
var selectionTiers = []revenueTier{
	{name: "tentpole", min: 300_000_000, max: -1, weight: 45},
	{name: "major", min: 75_000_000, max: 300_000_000, weight: 30},
	{name: "mid", min: 10_000_000, max: 75_000_000, weight: 15},
	{name: "low", min: 1_000_000, max: 10_000_000, weight: 7},
	{name: "micro", min: -1, max: 1_000_000, weight: 3},
}

func (t revenueTier) contains(revenue int64) bool {
	if t.min >= 0 && revenue < t.min {
		return false
	}
	if t.max >= 0 && revenue >= t.max {
		return false
	}
	return true
}

// WeightedSelector 按票房分档加权抽取下一部影片
type WeightedSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewWeightedSelector() *WeightedSelector {
	return &WeightedSelector{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewWeightedSelectorWithSource 指定随机源，供测试复现抽样分布
func NewWeightedSelectorWithSource(src rand.Source) *WeightedSelector {
	return &WeightedSelector{rng: rand.New(src)}
}

// pickTier 按权重抽取一个票房档
func (s *WeightedSelector) pickTier() revenueTier {
	total := 0
	for _, t := range selectionTiers {
		total += t.weight
	}
	n := s.rng.Intn(total)
	for _, t := range selectionTiers {
		n -= t.weight
		if n < 0 {
			return t
		}
	}
	return selectionTiers[len(selectionTiers)-1]
}

// Pick 从候选集中抽取一部影片
// 先加权选档，档内均匀随机；选中的档为空时回退为整个候选集上的均匀随机，
// 候选集本身已应用的类型/影人过滤在回退时保持不变。候选集为空返回 nil。
func (s *WeightedSelector) Pick(candidates []model.Movie) *model.Movie {
	if len(candidates) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tier := s.pickTier()
	subset := make([]model.Movie, 0, len(candidates))
	for _, m := range candidates {
		if tier.contains(m.Revenue) {
			subset = append(subset, m)
		}
	}

	if len(subset) == 0 {
		subset = candidates
	}

	return &subset[s.rng.Intn(len(subset))]
}
