package mediatypes

import "testing"

func TestGetFileType(t *testing.T) {
	tests := []struct {
		ext  string
		want FileType
	}{
		{".mp4", FileTypeVideo},
		{".mkv", FileTypeVideo},
		{".webm", FileTypeVideo},
		{".jpg", FileTypeImage},
		{".png", FileTypeImage},
		{".txt", FileTypeOther},
		{".exe", FileTypeOther},
		{"", FileTypeOther},
	}

	for _, tt := range tests {
		if got := GetFileType(tt.ext); got != tt.want {
			t.Errorf("GetFileType(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestGetMimeType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".mp4", "video/mp4"},
		{".mkv", "video/x-matroska"},
		{".jpg", "image/jpeg"},
		{".unknown", "application/octet-stream"},
		{"", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := GetMimeType(tt.ext); got != tt.want {
			t.Errorf("GetMimeType(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestIsMediaFile(t *testing.T) {
	if !IsMediaFile(".mp4") {
		t.Error("Expected .mp4 to be a media file")
	}
	if !IsMediaFile(".png") {
		t.Error("Expected .png to be a media file")
	}
	if IsMediaFile(".txt") {
		t.Error("Expected .txt not to be a media file")
	}
}
