package api

import "github.com/dmitrijs2005/crickshots/internal/models"

func UserFromModel(u models.SessionUser) *User {
	return &User{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

func (u *User) Model() models.SessionUser {
	if u == nil {
		return models.SessionUser{}
	}
	return models.SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

func ImageFromModel(i models.Image) *Image {
	return &Image{
		ID:        i.ID,
		Title:     i.Title,
		ImageURL:  i.ImageURL,
		IsPremium: i.IsPremium,
		Price:     i.Price,
		Category:  i.Category,
	}
}

func (i *Image) Model() models.Image {
	return models.Image{
		ID:        i.ID,
		Title:     i.Title,
		ImageURL:  i.ImageURL,
		IsPremium: i.IsPremium,
		Price:     i.Price,
		Category:  i.Category,
	}
}

func (r *ListImagesRequest) Filter() models.ImageFilter {
	return models.ImageFilter{
		Category:    r.Category,
		Search:      r.Search,
		OnlyFree:    r.OnlyFree,
		OnlyPremium: r.OnlyPremium,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
	}
}

func ListImagesRequestFromFilter(f models.ImageFilter) *ListImagesRequest {
	return &ListImagesRequest{
		Category:    f.Category,
		Search:      f.Search,
		OnlyFree:    f.OnlyFree,
		OnlyPremium: f.OnlyPremium,
		MinPrice:    f.MinPrice,
		MaxPrice:    f.MaxPrice,
	}
}

func PurchasedImageFromModel(p models.PurchasedImage) *PurchasedImage {
	return &PurchasedImage{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		ImageID:       p.ImageID,
		Title:         p.Title,
		Price:         p.Price,
		PurchasedAt:   p.PurchasedAt,
	}
}

func (p *PurchasedImage) Model() models.PurchasedImage {
	return models.PurchasedImage{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		ImageID:       p.ImageID,
		Title:         p.Title,
		Price:         p.Price,
		PurchasedAt:   p.PurchasedAt,
	}
}

func PurchasedImagesFromModel(items []models.PurchasedImage) []*PurchasedImage {
	out := make([]*PurchasedImage, 0, len(items))
	for _, it := range items {
		out = append(out, PurchasedImageFromModel(it))
	}
	return out
}

func PurchasedImagesToModel(items []*PurchasedImage) []models.PurchasedImage {
	out := make([]models.PurchasedImage, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it.Model())
		}
	}
	return out
}

func TransactionFromModel(t *models.Transaction) *Transaction {
	return &Transaction{
		ID:        t.ID,
		Method:    string(t.Method),
		UPIID:     t.UPIID,
		Items:     PurchasedImagesFromModel(t.Items),
		CreatedAt: t.CreatedAt,
	}
}

// Model converts t back; userID is not on the wire and must be supplied.
func (t *Transaction) Model(userID int64) *models.Transaction {
	items := PurchasedImagesToModel(t.Items)
	for i := range items {
		items[i].UserID = userID
	}
	return &models.Transaction{
		ID:        t.ID,
		UserID:    userID,
		Method:    models.PaymentMethod(t.Method),
		UPIID:     t.UPIID,
		Items:     items,
		CreatedAt: t.CreatedAt,
	}
}
