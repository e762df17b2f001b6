package cache

import (
	"time"

	coursedomain "github.com/abhijitabd5/sti-academy/internal/course/domain"
)

const defaultCourseTTL = 5 * time.Minute

// CatalogCache stores hot-path course lookups for quoting and enrollment.
// Catalog writes call Invalidate so a course that stops offering hostel or
// mess drops out of quotes immediately.
type CatalogCache interface {
	GetCourse(key string) (*coursedomain.Course, bool)
	SetCourse(key string, course *coursedomain.Course)
	Invalidate()
}

type catalogCache struct {
	courses   Cache[string, *coursedomain.Course]
	courseTTL time.Duration
}

// NewCatalogCache returns an in-memory cache tuned for catalog reads.
func NewCatalogCache() CatalogCache {
	return &catalogCache{
		courses:   NewTTLCache[string, *coursedomain.Course](),
		courseTTL: defaultCourseTTL,
	}
}

func (c *catalogCache) GetCourse(key string) (*coursedomain.Course, bool) {
	return c.courses.Get(key)
}

func (c *catalogCache) SetCourse(key string, course *coursedomain.Course) {
	if course == nil {
		return
	}
	c.courses.Set(key, course, c.courseTTL)
}

func (c *catalogCache) Invalidate() {
	c.courses.Purge()
}
