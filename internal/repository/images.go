package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const imageField = "image"

// UploadImage 는 가게 이미지를 올리고 접근 가능한 URL 을 돌려준다.
func (r *Repository) UploadImage(ctx context.Context, name string, img io.Reader) (string, error) {
	body, err := r.gateway.Upload(ctx, "/images/upload", imageField, name, img)
	if err != nil {
		return "", err
	}

	var res struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("repository: decode upload response: %w", err)
	}
	if res.URL == "" {
		return "", errors.New("repository: upload response has no url")
	}
	return res.URL, nil
}
