package attendance

import "time"

const (
	// TimestampLayout は打刻時刻の表示書式です。保存もこの書式の文字列で行います。
	TimestampLayout = "01/02/2006, 03:04:05 PM"
	// DateLayout はレコードの日付キーの書式です。
	DateLayout = "01/02/2006"
)

// Clock は運用タイムゾーンにおける現在時刻を提供します。
type Clock interface {
	// Now は打刻に使う表示書式の現在時刻を返します。
	Now() string
	// Today は当日の日付キーを返します。
	Today() string
}

// manilaLoc は固定の運用タイムゾーンです。tzdata が無い環境では UTC+8 に退避します。
var manilaLoc = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		return time.FixedZone("PST", 8*60*60)
	}
	return loc
}()

type manilaClock struct{}

// NewClock は Asia/Manila 固定の Clock を返します。
func NewClock() Clock {
	return manilaClock{}
}

func (manilaClock) Now() string {
	return time.Now().In(manilaLoc).Format(TimestampLayout)
}

func (manilaClock) Today() string {
	return time.Now().In(manilaLoc).Format(DateLayout)
}
