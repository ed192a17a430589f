package domain

type Room struct {
	ID     uint   `json:"id"`
	Number string `json:"number"`
	Floor  int    `json:"floor"`
}

type RoomRepository = Repository[Room]
