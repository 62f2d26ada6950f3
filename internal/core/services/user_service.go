package services

import (
	"fmt"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

const dateKeyLayout = "2006-01-02"

// UserService computes per-user participation statistics.
type UserService struct{}

// NewUserService creates a new UserService.
func NewUserService() *UserService {
	return &UserService{}
}

// AnalyzeUsers counts messages per user, ranks users by count descending
// (ties keep first-encounter order) and builds the sparse date-by-user
// activity matrix. Percentages are left unrounded.
func (s *UserService) AnalyzeUsers(messages []domain.Message) domain.UserStats {
	stats := domain.UserStats{
		ActiveUsers:      []domain.UserActivity{},
		ActivityTimeline: map[string]map[string]int{},
	}
	if len(messages) == 0 {
		return stats
	}

	counter := newOrderedCounter()
	for _, msg := range messages {
		counter.Add(msg.User)

		date := msg.Timestamp.Format(dateKeyLayout)
		if stats.ActivityTimeline[date] == nil {
			stats.ActivityTimeline[date] = map[string]int{}
		}
		stats.ActivityTimeline[date][msg.User]++
	}

	total := len(messages)
	for _, entry := range counter.MostCommon(-1) {
		stats.ActiveUsers = append(stats.ActiveUsers, domain.UserActivity{
			User:         entry.Key,
			MessageCount: entry.Count,
			Percentage:   float64(entry.Count) / float64(total) * 100,
		})
	}
	top := stats.ActiveUsers[0]
	stats.TopUser = &top

	return stats
}

// Insights produces human readable findings from user aggregates.
func (s *UserService) Insights(stats domain.UserStats) []string {
	if stats.TopUser == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("Most active user: %s (%d messages, %.1f%% of the conversation)",
			stats.TopUser.User, stats.TopUser.MessageCount, stats.TopUser.Percentage),
	}
}
