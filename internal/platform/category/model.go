package category

import (
	"time"

	"github.com/google/uuid"
)

// Category is either one of the fixed standard categories or a user-defined
// custom one. The two are distinguished by the Custom tag rather than by an
// open string, so callers can always tell which set a name came from.
type Category struct {
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// CustomCategory is a user-defined category as persisted
type CustomCategory struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Standard category names. The display names are Vietnamese because the
// standard set ships with the app.
var standardNames = []string{
	"Ăn uống",
	"Di chuyển",
	"Hóa đơn",
	"Nhà cửa",
	"Sức khỏe",
	"Giáo dục",
	"Giải trí",
	"Mua sắm",
	"Tiết kiệm",
	"Đầu tư",
	"Từ thiện",
	"Quà tặng",
	"Lương",
	"Thưởng",
	"Khác",
}

var standardSet = func() map[string]bool {
	m := make(map[string]bool, len(standardNames))
	for _, n := range standardNames {
		m[n] = true
	}
	return m
}()

// IsStandard reports whether a name belongs to the fixed standard set
func IsStandard(name string) bool {
	return standardSet[name]
}

// StandardCategories returns the fixed standard set in display order
func StandardCategories() []Category {
	cats := make([]Category, 0, len(standardNames))
	for _, n := range standardNames {
		cats = append(cats, Category{Name: n})
	}
	return cats
}
