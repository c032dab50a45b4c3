package models

import (
	"io"

	"storefront-gateway/internal/platform/backend"
)

// Upload is a file staged for the next save.
type Upload struct {
	Name    string
	Content io.Reader
}

// StagedMedia accumulates gallery edits between opening an item and
// saving it: new uploads on one side, ids of existing media marked for
// deletion on the other. Nothing reaches the upstream until Apply.
type StagedMedia struct {
	Cover          *Upload
	Images         []Upload
	Videos         []Upload
	ImagesToDelete []string
	VideosToDelete []string
}

func (m *StagedMedia) StageCover(name string, content io.Reader) {
	m.Cover = &Upload{Name: name, Content: content}
}

func (m *StagedMedia) StageImage(name string, content io.Reader) {
	m.Images = append(m.Images, Upload{Name: name, Content: content})
}

func (m *StagedMedia) StageVideo(name string, content io.Reader) {
	m.Videos = append(m.Videos, Upload{Name: name, Content: content})
}

func (m *StagedMedia) MarkImageDeleted(id string) {
	m.ImagesToDelete = append(m.ImagesToDelete, id)
}

func (m *StagedMedia) MarkVideoDeleted(id string) {
	m.VideosToDelete = append(m.VideosToDelete, id)
}

// Apply merges the staged edits into one multipart submission: cover as
// "image", galleries as repeated "images"/"videos" parts, deletions as
// repeated id fields.
func (m *StagedMedia) Apply(form *backend.Form) *backend.Form {
	if m == nil {
		return form
	}
	if m.Cover != nil {
		form.AddFile("image", m.Cover.Name, m.Cover.Content)
	}
	for _, image := range m.Images {
		form.AddFile("images", image.Name, image.Content)
	}
	for _, video := range m.Videos {
		form.AddFile("videos", video.Name, video.Content)
	}
	for _, id := range m.ImagesToDelete {
		form.Add("imagesToDelete", id)
	}
	for _, id := range m.VideosToDelete {
		form.Add("videosToDelete", id)
	}
	return form
}
