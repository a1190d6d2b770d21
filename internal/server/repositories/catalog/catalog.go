// Package catalog serves the image catalog. The storefront ships a fixed
// sample catalog; Repository is the seam for a real product database.
package catalog

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

type Repository interface {
	// List returns every image ordered by ID.
	List(ctx context.Context) ([]models.Image, error)
	// Get returns common.ErrorNotFound for unknown ids.
	Get(ctx context.Context, id int64) (*models.Image, error)
}

const pexelsParams = "?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"

func pexels(photo, file string) string {
	return "https://images.pexels.com/photos/" + photo + "/" + file + pexelsParams
}

// SampleImages is the catalog the storefront launches with.
var SampleImages = []models.Image{
	{ID: 1, Title: "Final Match Celebration", ImageURL: pexels("3628912", "pexels-photo-3628912.jpeg"), IsPremium: true, Price: 5.99, Category: "Team Celebrations"},
	{ID: 2, Title: "Perfect Batting Stance", ImageURL: pexels("3659610", "pexels-photo-3659610.jpeg"), IsPremium: true, Price: 4.99, Category: "Player Portraits"},
	{ID: 3, Title: "Stadium Aerial View", ImageURL: pexels("2570139", "pexels-photo-2570139.jpeg"), Category: "Stadium Views"},
	{ID: 4, Title: "Player Close-up", ImageURL: pexels("2385477", "pexels-photo-2385477.jpeg"), IsPremium: true, Price: 6.99, Category: "Player Portraits"},
	{ID: 5, Title: "Team Huddle", ImageURL: pexels("3621104", "pexels-photo-3621104.jpeg"), IsPremium: true, Price: 7.99, Category: "Team Celebrations"},
	{ID: 6, Title: "Critical Moment", ImageURL: pexels("3621102", "pexels-photo-3621102.jpeg"), Category: "Match Highlights"},
	{ID: 7, Title: "Trophy Ceremony", ImageURL: pexels("4404931", "pexels-photo-4404931.jpeg"), IsPremium: true, Price: 8.99, Category: "Vintage Classics"},
	{ID: 8, Title: "Stadium Lights", ImageURL: pexels("114296", "pexels-photo-114296.jpeg"), IsPremium: true, Price: 5.99, Category: "Stadium Views"},
	{ID: 9, Title: "Cricket Ball Close-up", ImageURL: pexels("4498243", "pexels-photo-4498243.jpeg"), Category: "Match Highlights"},
}

// StaticRepository serves an immutable slice of images.
type StaticRepository struct {
	images []models.Image
	byID   map[int64]int
}

// NewStaticRepository copies images; later changes to the argument do not
// leak into the repository.
func NewStaticRepository(images []models.Image) *StaticRepository {
	r := &StaticRepository{
		images: make([]models.Image, len(images)),
		byID:   make(map[int64]int, len(images)),
	}
	copy(r.images, images)
	sort.Slice(r.images, func(i, j int) bool { return r.images[i].ID < r.images[j].ID })
	for i, img := range r.images {
		r.byID[img.ID] = i
	}
	return r
}

func (r *StaticRepository) List(ctx context.Context) ([]models.Image, error) {
	out := make([]models.Image, len(r.images))
	copy(out, r.images)
	return out, nil
}

func (r *StaticRepository) Get(ctx context.Context, id int64) (*models.Image, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	img := r.images[i]
	return &img, nil
}
