package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList normalizes the heterogeneous list fields in the recipes
// collection. The upstream dataset stores ingredients, instructions and
// images sometimes as a BSON array, sometimes as a JSON-encoded string and
// occasionally as a bare string. Decoding always yields an ordered []string
// so nothing downstream has to branch on representation.
type StringList []string

func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*s = nil
		return nil

	case bson.TypeArray:
		elems, err := rv.Array().Values()
		if err != nil {
			return err
		}
		out := make([]string, 0, len(elems))
		for _, e := range elems {
			if str, ok := e.StringValueOK(); ok && strings.TrimSpace(str) != "" {
				out = append(out, str)
			}
		}
		*s = out
		return nil

	case bson.TypeString:
		raw := strings.TrimSpace(rv.StringValue())
		if raw == "" || raw == "character(0)" {
			*s = nil
			return nil
		}
		// A string that looks like a JSON array gets parsed; anything else
		// is treated as a single entry.
		if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
			var parsed []string
			if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
				out := make([]string, 0, len(parsed))
				for _, p := range parsed {
					if strings.TrimSpace(p) != "" {
						out = append(out, p)
					}
				}
				*s = out
				return nil
			}
		}
		*s = []string{raw}
		return nil

	default:
		// Unexpected BSON type: ignore rather than fail the whole document.
		*s = nil
		return nil
	}
}

// FlexString decodes a field that may be stored as a string or a number
// (RecipeServings is "4" in some documents and 4 or 4.0 in others).
type FlexString string

func (f *FlexString) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*f = ""
	case bson.TypeString:
		v := strings.TrimSpace(rv.StringValue())
		if strings.EqualFold(v, "nan") || v == "character(0)" {
			v = ""
		}
		*f = FlexString(v)
	case bson.TypeInt32:
		*f = FlexString(strconv.FormatInt(int64(rv.Int32()), 10))
	case bson.TypeInt64:
		*f = FlexString(strconv.FormatInt(rv.Int64(), 10))
	case bson.TypeDouble:
		*f = FlexString(strconv.FormatFloat(rv.Double(), 'f', -1, 64))
	default:
		*f = ""
	}
	return nil
}

// Recipe mirrors a document in the recipes collection. Field names follow
// the Food.com export the collection was loaded from. The embedding field is
// queried server-side by $vectorSearch and never projected back.
type Recipe struct {
	RecipeID             int64      `bson:"RecipeId" json:"id"`
	Name                 string     `bson:"Name" json:"name"`
	Description          string     `bson:"Description,omitempty" json:"description,omitempty"`
	Keywords             StringList `bson:"Keywords,omitempty" json:"keywords,omitempty"`
	IngredientParts      StringList `bson:"RecipeIngredientParts,omitempty" json:"ingredientParts,omitempty"`
	IngredientQuantities StringList `bson:"RecipeIngredientQuantities,omitempty" json:"ingredientQuantities,omitempty"`
	Instructions         StringList `bson:"RecipeInstructions,omitempty" json:"instructions,omitempty"`
	Images               StringList `bson:"Images,omitempty" json:"images,omitempty"`
	MainImage            FlexString `bson:"MainImage,omitempty" json:"mainImage,omitempty"`
	Category             StringList `bson:"RecipeCategory,omitempty" json:"category,omitempty"`
	Calories             *float64   `bson:"Calories,omitempty" json:"storedCalories,omitempty"`
	Servings             FlexString `bson:"RecipeServings,omitempty" json:"servings,omitempty"`
	Yield                FlexString `bson:"RecipeYield,omitempty" json:"yield,omitempty"`
	PrepTime             FlexString `bson:"PrepTime,omitempty" json:"prepTime,omitempty"`
	AuthorName           string     `bson:"AuthorName,omitempty" json:"authorName,omitempty"`
	DatePublished        FlexString `bson:"DatePublished,omitempty" json:"datePublished,omitempty"`
	Rating               *float64   `bson:"AggregatedRating,omitempty" json:"rating,omitempty"`
	ReviewCount          *int       `bson:"ReviewCount,omitempty" json:"reviewCount,omitempty"`
	SearchScore          *float64   `bson:"search_score,omitempty" json:"-"`

	FatContent          *float64 `bson:"FatContent,omitempty" json:"fat,omitempty"`
	SaturatedFatContent *float64 `bson:"SaturatedFatContent,omitempty" json:"saturatedFat,omitempty"`
	CholesterolContent  *float64 `bson:"CholesterolContent,omitempty" json:"cholesterol,omitempty"`
	SodiumContent       *float64 `bson:"SodiumContent,omitempty" json:"sodium,omitempty"`
	CarbohydrateContent *float64 `bson:"CarbohydrateContent,omitempty" json:"carbohydrates,omitempty"`
	FiberContent        *float64 `bson:"FiberContent,omitempty" json:"fiber,omitempty"`
	SugarContent        *float64 `bson:"SugarContent,omitempty" json:"sugar,omitempty"`
	ProteinContent      *float64 `bson:"ProteinContent,omitempty" json:"protein,omitempty"`
}

// DisplayImage returns a usable image URL, preferring MainImage over the
// first entry of Images. Only non-empty http(s) URLs count.
func (r *Recipe) DisplayImage() string {
	if url := validImageURL(string(r.MainImage)); url != "" {
		return url
	}
	if len(r.Images) > 0 {
		return validImageURL(r.Images[0])
	}
	return ""
}

// HasImage reports whether the recipe resolves to a displayable image.
func (r *Recipe) HasImage() bool {
	return r.DisplayImage() != ""
}

func validImageURL(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}
	return ""
}
