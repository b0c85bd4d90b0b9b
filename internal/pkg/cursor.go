package pkg

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"time"
)

// 游标统一 base64 编码；解码失败一律当作未传游标处理，不报错

func EncodeTimeCursor(t time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(t.UTC().Format(time.RFC3339Nano)))
}

// DecodeTimeCursor 返回 ok=false 表示游标缺失或不可解析
func DecodeTimeCursor(cursor string) (time.Time, bool) {
	if cursor == "" {
		return time.Time{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func EncodeFloorCursor(floor int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(floor, 10)))
}

func DecodeFloorCursor(cursor string) (int64, bool) {
	if cursor == "" {
		return 0, false
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, false
	}
	floor, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || floor <= 0 {
		return 0, false
	}
	return floor, true
}

// BarCursor 吧列表的复合游标：memberCount DESC, createdAt DESC
type BarCursor struct {
	MemberCount int64     `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func EncodeBarCursor(memberCount int64, createdAt time.Time) string {
	raw, _ := json.Marshal(BarCursor{MemberCount: memberCount, CreatedAt: createdAt.UTC()})
	return base64.StdEncoding.EncodeToString(raw)
}

func DecodeBarCursor(cursor string) (BarCursor, bool) {
	var bc BarCursor
	if cursor == "" {
		return bc, false
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return bc, false
	}
	if err := json.Unmarshal(raw, &bc); err != nil {
		return bc, false
	}
	return bc, true
}

// ClampLimit 列表页大小上限约束
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
