package models

// Field names of the create/update multipart form.
const (
	FieldTitle         = "title"
	FieldBody          = "body"
	FieldTags          = "tags"
	FieldCategoryIDs   = "category_ids"
	FieldFeaturedImage = "featured_image"
	FieldFeaturedVideo = "featured_video"
)

// ImageChange says what an update does to the featured image.
type ImageChange int

const (
	// ImageUnchanged sends nothing; the server keeps the stored image.
	ImageUnchanged ImageChange = iota
	// ImageReplace sends PostPayload.ImageFile as a file part.
	ImageReplace
	// ImageClear sends an empty featured_image value.
	ImageClear
)

// PostPayload is the wire-level content of a create or update call.
//
// On create only non-empty values are sent. On update every field is sent:
// an empty Tags or CategoryIDs becomes a single empty value, and an empty
// VideoKey becomes an empty featured_video value, so that the server can tell
// "cleared" apart from "unchanged".
type PostPayload struct {
	Title       string
	Body        string
	Tags        []string
	CategoryIDs []int64
	Image       ImageChange
	ImageFile   *LocalFile
	VideoKey    string
}
