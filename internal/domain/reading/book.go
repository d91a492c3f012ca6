package reading

import "time"

// BookSummary is the common projection of a BOOK node used by listings.
type BookSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	AuthorID      string   `json:"authorId,omitempty"`
	CoverImage    string   `json:"coverImage,omitempty"`
	Description   string   `json:"description,omitempty"`
	PageCount     int      `json:"pageCount"`
	PublishedYear int      `json:"publishedYear,omitempty"`
	Genres        []string `json:"genres"`
}

const UnknownAuthor = "Unknown Author"

// FriendStatus is a friend of the viewer together with their status on a book.
type FriendStatus struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}

type BookDetail struct {
	BookSummary
	AverageRating  float64        `json:"averageRating"`
	RatingsCount   int            `json:"ratingsCount"`
	ReadersCount   int            `json:"readersCount"`
	FinishedCount  int            `json:"finishedCount"`
	Adaptations    []Adaptation   `json:"adaptations"`
	FriendsReading []FriendStatus `json:"friendsReading"`
	SimilarBooks   []BookSummary  `json:"similarBooks"`
}

// ShelfEntry is one row of a user's shelf. Which optional fields are set depends on the shelf.
type ShelfEntry struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	CurrentPage   *int       `json:"currentPage,omitempty"`
	PageCount     *int       `json:"pageCount,omitempty"`
	Progress      *int       `json:"progress,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	LastUpdated   *time.Time `json:"lastUpdated,omitempty"`
	AddedDate     *time.Time `json:"addedDate,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

type UserReadingStats struct {
	BooksReading    int `json:"booksReading"`
	BooksFinished   int `json:"booksFinished"`
	BooksWantToRead int `json:"booksWantToRead"`
}

// TopGenres keeps at most two genres, the number shown next to a book card.
func TopGenres(genres []string) []string {
	if len(genres) == 0 {
		return []string{}
	}
	if len(genres) > 2 {
		return append([]string(nil), genres[:2]...)
	}
	return append([]string(nil), genres...)
}
