package models

import "time"

type User struct {
	ID        int64
	Email     string
	Username  string
	PassHash  []byte
	CreatedAt time.Time
}

type Link struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Image    *string `json:"image,omitempty"`
	FolderID *int64  `json:"folder_id,omitempty"`
	OwnerID  int64   `json:"owner_id"`
}

type Folder struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

type Message struct {
	Email   string `json:"to"`
	Purpose string `json:"purpose"`
}
