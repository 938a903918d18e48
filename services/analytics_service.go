package services

import (
	"sort"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"

	"gorm.io/gorm"
)

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// Bucket is one time-windowed aggregate of scan nutrient totals. Ephemeral:
// computed fresh on every request, never persisted.
type Bucket struct {
	PeriodLabel   string    `json:"period_label"`
	PeriodStart   time.Time `json:"period_start"`
	TotalCalories float64   `json:"total_calories"`
	TotalProtein  float64   `json:"total_protein"`
	TotalCarbs    float64   `json:"total_carbs"`
	TotalFat      float64   `json:"total_fat"`
	MealCount     int       `json:"meal_count"`
}

// AvgCaloriesPerMeal guards the empty bucket: no meals means 0, not NaN.
func (b Bucket) AvgCaloriesPerMeal() float64 {
	if b.MealCount == 0 {
		return 0
	}
	return round2(b.TotalCalories / float64(b.MealCount))
}

// Macros returns the bucket's calorie split across protein/carbs/fat.
func (b Bucket) Macros() MacroSplit {
	return MacroDistribution(b.TotalProtein, b.TotalCarbs, b.TotalFat)
}

// AggregatorOptions carry the two knobs daily/weekly bucketing depends on.
// Zero value means local time and Sunday-start weeks.
type AggregatorOptions struct {
	Location  *time.Location
	WeekStart time.Weekday
}

func (o AggregatorOptions) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// AggregateBuckets groups scans into zero-filled, chronologically ascending
// buckets over [windowStart, windowEnd). Records outside the window are
// ignored; empty periods inside it still emit a bucket so charts have no
// gaps. Pure and order-independent over the input slice.
func AggregateBuckets(records []models.Scan, g Granularity, windowStart, windowEnd time.Time, opts AggregatorOptions) ([]Bucket, error) {
	if !windowStart.Before(windowEnd) {
		return nil, ErrInvalidWindow
	}
	loc := opts.location()

	bucketStart := func(t time.Time) time.Time {
		t = t.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		switch g {
		case GranularityWeekly:
			back := (int(day.Weekday()) - int(opts.WeekStart) + 7) % 7
			return day.AddDate(0, 0, -back)
		case GranularityMonthly:
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		default:
			return day
		}
	}
	next := func(t time.Time) time.Time {
		switch g {
		case GranularityWeekly:
			return t.AddDate(0, 0, 7)
		case GranularityMonthly:
			return t.AddDate(0, 1, 0)
		default:
			return t.AddDate(0, 0, 1)
		}
	}
	label := func(t time.Time) string {
		if g == GranularityMonthly {
			return t.Format("2006-01")
		}
		return t.Format("2006-01-02")
	}

	var out []Bucket
	idx := map[string]int{}
	for b := bucketStart(windowStart); b.Before(windowEnd); b = next(b) {
		idx[label(b)] = len(out)
		out = append(out, Bucket{PeriodLabel: label(b), PeriodStart: b})
	}

	for _, r := range records {
		ts := r.ScanTimestamp
		if ts.Before(windowStart) || !ts.Before(windowEnd) {
			continue
		}
		i, ok := idx[label(bucketStart(ts))]
		if !ok {
			continue
		}
		out[i].TotalCalories += r.ScaledCalories
		out[i].TotalProtein += r.ScaledProtein
		out[i].TotalCarbs += r.ScaledCarbs
		out[i].TotalFat += r.ScaledFat
		out[i].MealCount++
	}

	return out, nil
}

// AvgDailyCalories averages bucket totals over every emitted period, empty
// ones included.
func AvgDailyCalories(buckets []Bucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	var sum float64
	for _, b := range buckets {
		sum += b.TotalCalories
	}
	return round2(sum / float64(len(buckets)))
}

// ---------- Read path ----------

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type DishCount struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Category string `json:"category"`
}

type ConfidenceSlice struct {
	Confidence string `json:"confidence"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AnalyticsSummary struct {
	TotalScans             int               `json:"total_scans"`
	AvgConfidence          float64           `json:"avg_confidence"` // 0..100
	TopDishes              []DishCount       `json:"top_dishes"`
	ScansPerDay            []DailyCount      `json:"scans_per_day"`
	ConfidenceDistribution []ConfidenceSlice `json:"confidence_distribution"`
	AvgPortionSize         float64           `json:"avg_portion_size"` // grams
	LocationBreakdown      []LocationCount   `json:"location_breakdown"`
	TotalCalories          float64           `json:"total_calories"`
	MacroSplit             MacroSplit        `json:"macro_split"`
}

func (s *AnalyticsService) fetchWindow(userID uint, from, to time.Time) ([]models.Scan, error) {
	var scans []models.Scan
	err := s.db.
		Where("user_id = ? AND scan_timestamp >= ? AND scan_timestamp < ?", userID, from, to).
		Order("scan_timestamp ASC").
		Find(&scans).Error
	return scans, err
}

// Summary computes the dashboard numbers for the trailing `days` window.
func (s *AnalyticsService) Summary(userID uint, days int, opts AggregatorOptions) (*AnalyticsSummary, error) {
	loc := opts.location()
	now := time.Now().In(loc)
	to := dayStart(now, loc).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -days)

	scans, err := s.fetchWindow(userID, from, to)
	if err != nil {
		return nil, err
	}
	return SummarizeScans(scans, from, to, opts)
}

// SummarizeScans is the pure half of Summary, exposed so export and tests can
// run it over an already-fetched record set.
func SummarizeScans(scans []models.Scan, from, to time.Time, opts AggregatorOptions) (*AnalyticsSummary, error) {
	buckets, err := AggregateBuckets(scans, GranularityDaily, from, to, opts)
	if err != nil {
		return nil, err
	}

	out := &AnalyticsSummary{TotalScans: len(scans)}

	perDay := make([]DailyCount, 0, len(buckets))
	for _, b := range buckets {
		perDay = append(perDay, DailyCount{Date: b.PeriodLabel, Count: b.MealCount})
		out.TotalCalories += b.TotalCalories
	}
	out.ScansPerDay = perDay

	var totalProtein, totalCarbs, totalFat float64
	for _, b := range buckets {
		totalProtein += b.TotalProtein
		totalCarbs += b.TotalCarbs
		totalFat += b.TotalFat
	}
	out.MacroSplit = MacroDistribution(totalProtein, totalCarbs, totalFat)

	if len(scans) == 0 {
		out.TopDishes = []DishCount{}
		out.ConfidenceDistribution = confidenceSlices(map[models.ConfidenceTier]int{}, 0)
		out.LocationBreakdown = []LocationCount{}
		return out, nil
	}

	// confidence: high=3, medium=2, low=1, scaled to a percentage
	var weight, grams float64
	tiers := map[models.ConfidenceTier]int{}
	locations := map[string]int{}
	dishes := map[string]*DishCount{}
	for _, scan := range scans {
		weight += tierWeight(scan.Confidence)
		grams += scan.EstimatedGrams
		tiers[scan.Confidence]++
		locations[scan.CanteenLocation]++

		name, category := dishIdentity(scan)
		if d, ok := dishes[name]; ok {
			d.Count++
		} else {
			dishes[name] = &DishCount{Name: name, Category: category, Count: 1}
		}
	}
	out.AvgConfidence = round2(weight / float64(len(scans)) * 33.33)
	out.AvgPortionSize = roundHalfUp(grams / float64(len(scans)))
	out.ConfidenceDistribution = confidenceSlices(tiers, len(scans))

	for _, d := range dishes {
		out.TopDishes = append(out.TopDishes, *d)
	}
	sort.Slice(out.TopDishes, func(i, j int) bool {
		if out.TopDishes[i].Count != out.TopDishes[j].Count {
			return out.TopDishes[i].Count > out.TopDishes[j].Count
		}
		return out.TopDishes[i].Name < out.TopDishes[j].Name
	})
	if len(out.TopDishes) > 5 {
		out.TopDishes = out.TopDishes[:5]
	}

	for l, n := range locations {
		out.LocationBreakdown = append(out.LocationBreakdown, LocationCount{Location: l, Count: n})
	}
	sort.Slice(out.LocationBreakdown, func(i, j int) bool {
		if out.LocationBreakdown[i].Count != out.LocationBreakdown[j].Count {
			return out.LocationBreakdown[i].Count > out.LocationBreakdown[j].Count
		}
		return out.LocationBreakdown[i].Location < out.LocationBreakdown[j].Location
	})

	return out, nil
}

// dishIdentity resolves a display name for a scan from its candidate blob:
// the entry matching the selected menu item wins, then the top-ranked one.
func dishIdentity(scan models.Scan) (name, category string) {
	name, category = "Unknown Dish", "Unknown Category"
	if len(scan.Alternatives) == 0 {
		return
	}
	chosen := scan.Alternatives[0]
	for _, alt := range scan.Alternatives {
		if alt.ID == scan.MenuItemID {
			chosen = alt
			break
		}
	}
	if chosen.Name != "" {
		name = chosen.Name
	}
	if chosen.Category != "" {
		category = chosen.Category
	}
	return
}

func confidenceSlices(tiers map[models.ConfidenceTier]int, total int) []ConfidenceSlice {
	out := make([]ConfidenceSlice, 0, 3)
	for _, t := range []models.ConfidenceTier{models.TierHigh, models.TierMedium, models.TierLow} {
		pct := 0
		if total > 0 {
			pct = int(roundHalfUp(float64(tiers[t]) / float64(total) * 100))
		}
		out = append(out, ConfidenceSlice{
			Confidence: capitalize(string(t)),
			Count:      tiers[t],
			Percentage: pct,
		})
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// Trends returns daily buckets over the trailing `days` window, for the
// trend chart and insight generation.
func (s *AnalyticsService) Trends(userID uint, days int, g Granularity, opts AggregatorOptions) ([]Bucket, error) {
	loc := opts.location()
	now := time.Now().In(loc)
	to := dayStart(now, loc).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -days)

	scans, err := s.fetchWindow(userID, from, to)
	if err != nil {
		return nil, err
	}
	return AggregateBuckets(scans, g, from, to, opts)
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
