package attendance

import (
	"fmt"
	"math"
	"time"
)

// ElapsedHours は start から end までの経過時間を小数第2位までの時間数で返します。
// 丸めは四捨五入(絶対値切り上げ)です。end < start の順序違反は呼び出し側の責任で、
// その場合もエラーにはせず負の値を返します。
func ElapsedHours(start, end string) (float64, error) {
	s, err := time.ParseInLocation(TimestampLayout, start, manilaLoc)
	if err != nil {
		return 0, fmt.Errorf("attendance: parse start %q: %w", start, err)
	}

	e, err := time.ParseInLocation(TimestampLayout, end, manilaLoc)
	if err != nil {
		return 0, fmt.Errorf("attendance: parse end %q: %w", end, err)
	}

	return roundHours(e.Sub(s).Hours()), nil
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
