package models

// Review mirrors a document in the reviews collection. RecipeId is a plain
// foreign key; nothing enforces it at write time.
type Review struct {
	RecipeID     int64      `bson:"RecipeId" json:"recipeId"`
	Rating       int        `bson:"Rating" json:"rating"`
	Text         string     `bson:"Review" json:"text"`
	Author       string     `bson:"AuthorName" json:"author"`
	SubmittedAt  FlexString `bson:"DateSubmitted,omitempty" json:"submittedAt,omitempty"`
	ReviewLength int        `bson:"ReviewLength,omitempty" json:"-"`
}
