package app

import (
	"sort"
	"sync"

	"github.com/Lekuruu/tunescout/internal/music"
)

// Storage keeps songs seen through search and trending, along with
// per-user play history and likes. Songs are keyed by video id.
type Storage interface {
	// SaveSongs stores records that are not known yet and returns the stored version of each
	SaveSongs(records []music.Record) []music.Record
	GetSong(videoID string) (music.Record, bool)

	AddRecentlyPlayed(userID int, videoID string)
	GetRecentlyPlayed(userID int, limit int) []music.Record

	ToggleLikedSong(userID int, videoID string) bool
	IsLikedSong(userID int, videoID string) bool
	GetLikedSongs(userID int) []music.Record
}

type userSong struct {
	UserID  int
	VideoID string
}

// MemoryStorage is a Storage living in process memory, safe for concurrent use
type MemoryStorage struct {
	mutex  sync.RWMutex
	songs  map[string]music.Record
	played map[userSong]uint64
	liked  map[userSong]uint64

	// Orders history and likes, newest first
	sequence uint64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		songs:  make(map[string]music.Record),
		played: make(map[userSong]uint64),
		liked:  make(map[userSong]uint64),
	}
}

func (ms *MemoryStorage) SaveSongs(records []music.Record) []music.Record {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	stored := make([]music.Record, 0, len(records))
	for _, record := range records {
		existing, ok := ms.songs[record.VideoID]
		if !ok {
			ms.songs[record.VideoID] = record
			existing = record
		}
		stored = append(stored, existing)
	}
	return stored
}

func (ms *MemoryStorage) GetSong(videoID string) (music.Record, bool) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	song, ok := ms.songs[videoID]
	return song, ok
}

// AddRecentlyPlayed moves the song to the front of the user's history
func (ms *MemoryStorage) AddRecentlyPlayed(userID int, videoID string) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.sequence++
	ms.played[userSong{userID, videoID}] = ms.sequence
}

// GetRecentlyPlayed returns up to limit songs, most recently played first
func (ms *MemoryStorage) GetRecentlyPlayed(userID int, limit int) []music.Record {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	songs := ms.collect(ms.played, userID)
	if limit >= 0 && len(songs) > limit {
		songs = songs[:limit]
	}
	return songs
}

// ToggleLikedSong likes the song, or removes an existing like, and reports the new state
func (ms *MemoryStorage) ToggleLikedSong(userID int, videoID string) bool {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	key := userSong{userID, videoID}
	if _, ok := ms.liked[key]; ok {
		delete(ms.liked, key)
		return false
	}

	ms.sequence++
	ms.liked[key] = ms.sequence
	return true
}

func (ms *MemoryStorage) IsLikedSong(userID int, videoID string) bool {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	_, ok := ms.liked[userSong{userID, videoID}]
	return ok
}

// GetLikedSongs returns the user's liked songs, most recently liked first
func (ms *MemoryStorage) GetLikedSongs(userID int) []music.Record {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	return ms.collect(ms.liked, userID)
}

// collect resolves the user's entries to songs, newest first. Callers hold the lock.
func (ms *MemoryStorage) collect(entries map[userSong]uint64, userID int) []music.Record {
	type entry struct {
		sequence uint64
		song     music.Record
	}

	var matches []entry
	for key, sequence := range entries {
		if key.UserID != userID {
			continue
		}
		if song, ok := ms.songs[key.VideoID]; ok {
			matches = append(matches, entry{sequence, song})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].sequence > matches[j].sequence
	})

	songs := make([]music.Record, len(matches))
	for i, match := range matches {
		songs[i] = match.song
	}
	return songs
}
