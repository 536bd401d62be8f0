package sizing

import (
	"math"
	"time"
)

// 月齢→サイズの対応表の1行。HeightCM/WeightKGはその月齢の中央値。
type Bracket struct {
	AgeMonths int
	Clothing  string
	Shoe      string
	Diaper    string
	HeightCM  float64
	WeightKG  float64
}

// 月齢の昇順。検索は「月齢以下で最大のキー」。
var brackets = []Bracket{
	{AgeMonths: 0, Clothing: "Newborn", Shoe: "0", Diaper: "N", HeightCM: 50.0, WeightKG: 3.5},
	{AgeMonths: 3, Clothing: "3-6M", Shoe: "1", Diaper: "1", HeightCM: 60.0, WeightKG: 6.0},
	{AgeMonths: 6, Clothing: "6-9M", Shoe: "2", Diaper: "2", HeightCM: 67.0, WeightKG: 7.9},
	{AgeMonths: 9, Clothing: "9-12M", Shoe: "3", Diaper: "3", HeightCM: 71.0, WeightKG: 8.9},
	{AgeMonths: 12, Clothing: "12-18M", Shoe: "4", Diaper: "4", HeightCM: 75.0, WeightKG: 9.8},
	{AgeMonths: 18, Clothing: "18-24M", Shoe: "5", Diaper: "4", HeightCM: 81.0, WeightKG: 11.0},
	{AgeMonths: 24, Clothing: "2T", Shoe: "6", Diaper: "5", HeightCM: 86.0, WeightKG: 12.2},
	{AgeMonths: 36, Clothing: "3T", Shoe: "8", Diaper: "6", HeightCM: 94.0, WeightKG: 14.0},
	{AgeMonths: 48, Clothing: "4T", Shoe: "10", Diaper: "7", HeightCM: 101.0, WeightKG: 16.0},
}

const (
	forecastHorizonMonths = 6
	forecastStepMonths    = 2

	percentileMin = 5
	percentileMax = 95
)

// 実測値。0は未計測扱い。
type Measurements struct {
	HeightCM float64
	WeightKG float64
}

// 予測1件分（月齢ごと）。
type Forecast struct {
	AgeMonths  int     `json:"age_months"`
	Clothing   string  `json:"clothing_size"`
	Shoe       string  `json:"shoe_size"`
	Diaper     string  `json:"diaper_size"`
	HeightCM   float64 `json:"height_cm"`
	WeightKG   float64 `json:"weight_kg"`
	Percentile int     `json:"percentile"`
}

// サイズ予測。本来の一次経路は外部AI呼び出しで、これはその差し替え先。
type Predictor interface {
	Forecast(birthDate time.Time, m Measurements, now time.Time) []Forecast
}

// 対応表ベースの決定的なフォールバック実装。
type TablePredictor struct{}

func NewTablePredictor() *TablePredictor {
	return &TablePredictor{}
}

// Forecast は現在月齢から2ヶ月刻みで+6ヶ月まで予測する。
// 身長・体重は表の中央値を線形に伸ばし、実測値があれば中央値との比率で補正する。
func (p *TablePredictor) Forecast(birthDate time.Time, m Measurements, now time.Time) []Forecast {
	age := AgeInMonths(birthDate, now)

	// 実測値と中央値の比率（未計測なら1.0）
	heightRatio := 1.0
	if m.HeightCM > 0 {
		heightRatio = m.HeightCM / medianHeight(age)
	}
	weightRatio := 1.0
	if m.WeightKG > 0 {
		weightRatio = m.WeightKG / medianWeight(age)
	}

	out := make([]Forecast, 0, forecastHorizonMonths/forecastStepMonths+1)
	for offset := 0; offset <= forecastHorizonMonths; offset += forecastStepMonths {
		a := age + offset
		b := bracketFor(a)

		out = append(out, Forecast{
			AgeMonths:  a,
			Clothing:   b.Clothing,
			Shoe:       b.Shoe,
			Diaper:     b.Diaper,
			HeightCM:   round1(medianHeight(a) * heightRatio),
			WeightKG:   round1(medianWeight(a) * weightRatio),
			Percentile: ClampPercentile(percentileEstimate(heightRatio)),
		})
	}
	return out
}

// AgeInMonths は月齢（切り捨て、0未満にはしない）。
func AgeInMonths(birthDate time.Time, now time.Time) int {
	if now.Before(birthDate) {
		return 0
	}

	years := now.Year() - birthDate.Year()
	months := int(now.Month()) - int(birthDate.Month())
	total := years*12 + months
	if now.Day() < birthDate.Day() {
		total--
	}

	if total < 0 {
		return 0
	}
	return total
}

// bracketFor は月齢以下で最大のキーの行を返す。
func bracketFor(ageMonths int) Bracket {
	best := brackets[0]
	for _, b := range brackets {
		if b.AgeMonths > ageMonths {
			break
		}
		best = b
	}
	return best
}

// medianHeight は月齢に対する中央値身長。行の間は線形補間、表の先は最後の区間の傾きで外挿。
func medianHeight(ageMonths int) float64 {
	return interpolate(ageMonths, func(b Bracket) float64 { return b.HeightCM })
}

func medianWeight(ageMonths int) float64 {
	return interpolate(ageMonths, func(b Bracket) float64 { return b.WeightKG })
}

func interpolate(ageMonths int, value func(Bracket) float64) float64 {
	first := brackets[0]
	if ageMonths <= first.AgeMonths {
		return value(first)
	}

	for i := 1; i < len(brackets); i++ {
		lo, hi := brackets[i-1], brackets[i]
		if ageMonths <= hi.AgeMonths {
			return lerp(ageMonths, lo.AgeMonths, hi.AgeMonths, value(lo), value(hi))
		}
	}

	// 表の範囲外は最後の区間の傾きで外挿
	lo, hi := brackets[len(brackets)-2], brackets[len(brackets)-1]
	return lerp(ageMonths, lo.AgeMonths, hi.AgeMonths, value(lo), value(hi))
}

func lerp(x, x0, x1 int, y0, y1 float64) float64 {
	t := float64(x-x0) / float64(x1-x0)
	return y0 + (y1-y0)*t
}

// percentileEstimate は中央値との比率からの簡易推定。中央値=50、1%のずれ=2.5ポイント。
func percentileEstimate(ratio float64) int {
	return int(math.Round(50 + (ratio-1)*100*2.5))
}

// ClampPercentile は[5,95]に収める。
func ClampPercentile(p int) int {
	if p < percentileMin {
		return percentileMin
	}
	if p > percentileMax {
		return percentileMax
	}
	return p
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
