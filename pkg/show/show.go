package show

import (
	"fmt"
	"time"

	"github.com/showsync/showsync/pkg/machine"
)

// DateFormat is the layout for date_finished values in the collection file
const DateFormat = "2006-01-02"

type State string

const (
	StateToExplore     State = "to_explore"
	StateRecommended   State = "recommended"
	StateWatching      State = "watching"
	StateAvailableNext State = "available_next"
	StateWaiting       State = "waiting"
	StateFinished      State = "finished"
)

// Status is the airing status of a show as last observed from metadata
type Status string

const (
	StatusContinuing Status = "continuing"
	StatusEnded      Status = "ended"
)

type Rating string

const (
	RatingExcellent        Rating = "excellent"
	RatingGood             Rating = "good"
	RatingMiddling         Rating = "middling"
	RatingBad              Rating = "bad"
	RatingAbandonedHalfway Rating = "abandoned_halfway"
)

type Event string

const (
	EventStartWatching   Event = "start_watching"
	EventSeasonWatched   Event = "season_watched"
	EventFinish          Event = "finish"
	EventAbandon         Event = "abandon"
	EventStartNextSeason Event = "start_next_season"
	EventWaitForSeason   Event = "wait_for_season"
	EventSeasonAvailable Event = "season_available"
)

// Show is one tracked series. Season counters and free-text fields are
// meaningful only in certain states; Validate enforces the matrix.
type Show struct {
	ID             string `yaml:"id" json:"id"`
	Title          string `yaml:"title" json:"title"`
	ExternalID     int    `yaml:"external_id,omitempty" json:"external_id,omitempty"`
	State          State  `yaml:"state" json:"state"`
	CurrentSeason  int    `yaml:"current_season,omitempty" json:"current_season,omitempty"`
	NextSeason     int    `yaml:"next_season,omitempty" json:"next_season,omitempty"`
	SeasonsWatched int    `yaml:"seasons_watched,omitempty" json:"seasons_watched,omitempty"`
	TotalSeasons   int    `yaml:"total_seasons,omitempty" json:"total_seasons,omitempty"`
	ShowStatus     Status `yaml:"show_status,omitempty" json:"show_status,omitempty"`
	Rating         Rating `yaml:"rating,omitempty" json:"rating,omitempty"`
	Reason         string `yaml:"reason,omitempty" json:"reason,omitempty"`
	Blurb          string `yaml:"blurb,omitempty" json:"blurb,omitempty"`
	Notes          string `yaml:"notes,omitempty" json:"notes,omitempty"`
	DateFinished   string `yaml:"date_finished,omitempty" json:"date_finished,omitempty"`
}

// NewToExplore creates a show a user wants to look into
func NewToExplore(id, title, blurb string) Show {
	return Show{
		ID:    id,
		Title: title,
		State: StateToExplore,
		Blurb: blurb,
	}
}

// NewRecommended creates a show proposed by the recommendation reconciler
func NewRecommended(id, title, reason string) Show {
	return Show{
		ID:     id,
		Title:  title,
		State:  StateRecommended,
		Reason: reason,
	}
}

func (s Show) Machine() *machine.StateMachine[State, Event] {
	return machine.New(s.State,
		machine.From[State, Event](StateToExplore).On(EventStartWatching).To(StateWatching),
		machine.From[State, Event](StateRecommended).On(EventStartWatching).To(StateWatching),
		machine.From[State, Event](StateWatching).On(EventSeasonWatched).To(StateAvailableNext),
		machine.From[State, Event](StateWatching).On(EventFinish).To(StateFinished),
		machine.From[State, Event](StateWatching).On(EventAbandon).To(StateFinished),
		machine.From[State, Event](StateWatching).On(EventWaitForSeason).To(StateWaiting),
		machine.From[State, Event](StateAvailableNext).On(EventStartNextSeason).To(StateWatching),
		machine.From[State, Event](StateWaiting).On(EventSeasonAvailable).To(StateAvailableNext),
	)
}

// Validate checks intrinsic invariants and the per-state field matrix
func (s Show) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("show id is required")
	}

	if s.Title == "" {
		return fmt.Errorf("show %q: title is required", s.ID)
	}

	switch s.State {
	case StateToExplore, StateRecommended, StateWatching, StateAvailableNext, StateWaiting, StateFinished:
	default:
		return fmt.Errorf("show %q: unknown state %q", s.ID, s.State)
	}

	if s.CurrentSeason < 0 || s.NextSeason < 0 || s.SeasonsWatched < 0 || s.TotalSeasons < 0 {
		return fmt.Errorf("show %q: season counters must be non-negative", s.ID)
	}

	if s.TotalSeasons > 0 && s.SeasonsWatched > s.TotalSeasons {
		return fmt.Errorf("show %q: seasons_watched %d exceeds total_seasons %d", s.ID, s.SeasonsWatched, s.TotalSeasons)
	}

	if s.Rating != "" && s.State != StateFinished {
		return fmt.Errorf("show %q: rating is only valid when finished", s.ID)
	}

	if s.DateFinished != "" && s.State != StateFinished {
		return fmt.Errorf("show %q: date_finished is only valid when finished", s.ID)
	}

	if s.Reason != "" && s.State != StateRecommended {
		return fmt.Errorf("show %q: reason is only valid when recommended", s.ID)
	}

	if s.Blurb != "" && s.State != StateToExplore {
		return fmt.Errorf("show %q: blurb is only valid when to_explore", s.ID)
	}

	if s.CurrentSeason > 0 && s.State != StateWatching {
		return fmt.Errorf("show %q: current_season is only valid when watching", s.ID)
	}

	if s.NextSeason > 0 && s.State != StateAvailableNext {
		return fmt.Errorf("show %q: next_season is only valid when available_next", s.ID)
	}

	switch s.State {
	case StateWatching:
		if s.CurrentSeason < 1 {
			return fmt.Errorf("show %q: watching requires current_season", s.ID)
		}
	case StateAvailableNext:
		if s.NextSeason < 1 {
			return fmt.Errorf("show %q: available_next requires next_season", s.ID)
		}
	case StateFinished:
		if s.Rating == "" {
			return fmt.Errorf("show %q: finished requires a rating", s.ID)
		}
		if s.DateFinished == "" {
			return fmt.Errorf("show %q: finished requires date_finished", s.ID)
		}
		if _, err := time.Parse(DateFormat, s.DateFinished); err != nil {
			return fmt.Errorf("show %q: date_finished %q is not %s", s.ID, s.DateFinished, DateFormat)
		}
	}

	return nil
}
