package services

import "tastory-backend/models"

// Page is one ranked, sliced page of results.
type Page struct {
	Recipes      []models.Recipe
	CurrentPage  int
	TotalPages   int
	TotalResults int
}

// Ranker applies the images-first ordering rule and slices pages. The
// page size and page cap are fixed per deployment.
type Ranker struct {
	PageSize int
	MaxPages int
}

func NewRanker(pageSize, maxPages int) *Ranker {
	if pageSize < 1 {
		pageSize = 10
	}
	if maxPages < 1 {
		maxPages = 3
	}
	return &Ranker{PageSize: pageSize, MaxPages: maxPages}
}

// Rank partitions candidates into with-image and without-image groups,
// keeping the retrieval order inside each group. Images-first is a hard
// rule and overrides any relevance score.
func (rk *Ranker) Rank(candidates []models.Recipe) []models.Recipe {
	withImage := make([]models.Recipe, 0, len(candidates))
	withoutImage := make([]models.Recipe, 0)

	for _, r := range candidates {
		if r.HasImage() {
			withImage = append(withImage, r)
		} else {
			withoutImage = append(withoutImage, r)
		}
	}

	return append(withImage, withoutImage...)
}

// Paginate ranks the candidate set and slices the requested page. Pages
// past the end clamp to the last page so identical queries return
// identical pages for any requested page number.
func (rk *Ranker) Paginate(candidates []models.Recipe, page int) Page {
	ranked := rk.Rank(candidates)
	total := len(ranked)

	totalPages := (total + rk.PageSize - 1) / rk.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if totalPages > rk.MaxPages {
		totalPages = rk.MaxPages
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * rk.PageSize
	end := start + rk.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Recipes:      ranked[start:end],
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}
