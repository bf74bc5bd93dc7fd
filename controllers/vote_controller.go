package controllers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/middleware"
	"github.com/Sharmake123/som-election-platform/models"
)

// CastVote records one ballot for the authenticated voter. The pre-check
// for an existing vote is backed by the unique (user, election) index, so
// a concurrent double cast still comes back as the same conflict.
func CastVote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input struct {
		ElectionID  uint `json:"electionId" binding:"required"`
		CandidateID uint `json:"candidateId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if user.Status != models.StatusVerified {
		c.JSON(http.StatusForbidden, gin.H{"message": "Your account is not verified. You cannot vote."})
		return
	}

	var election models.Election
	err := config.DB.First(&election, input.ElectionID).Error
	if err != nil || !election.ActiveAt(models.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "This election is not currently active."})
		return
	}

	// The candidate must actually stand in this election.
	var candidate models.Candidate
	err = config.DB.
		Where("id = ? AND election_id = ?", input.CandidateID, input.ElectionID).
		First(&candidate).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid election or candidate"})
		return
	}

	var existing models.Vote
	err = config.DB.
		Where("user_id = ? AND election_id = ?", user.ID, input.ElectionID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You have already voted in this election"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	vote := models.Vote{
		UserID:      user.ID,
		ElectionID:  input.ElectionID,
		CandidateID: input.CandidateID,
	}
	if err := config.DB.Create(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have already voted in this election"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Vote cast successfully"})
}

// MyVotes returns the authenticated voter's own vote history.
func MyVotes(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var votes []models.Vote
	if err := config.DB.Where("user_id = ?", user.ID).Find(&votes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, votes)
}

type tallyRow struct {
	CandidateID uint   `json:"candidateId" gorm:"column:candidate_id"`
	Name        string `json:"name" gorm:"column:name"`
	Votes       int    `json:"votes" gorm:"column:vote_count"`
}

// ElectionResults tallies an election: votes grouped per candidate, highest
// count first, candidate id ascending as the tie-break.
func ElectionResults(c *gin.Context) {
	electionID := c.Param("electionId")

	results := []tallyRow{}
	err := config.DB.Model(&models.Vote{}).
		Select("votes.candidate_id AS candidate_id, candidates.full_name AS name, COUNT(*) AS vote_count").
		Joins("JOIN candidates ON candidates.id = votes.candidate_id").
		Where("votes.election_id = ?", electionID).
		Group("votes.candidate_id, candidates.full_name").
		Order("vote_count DESC, candidate_id ASC").
		Scan(&results).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	totalVotes := 0
	for _, row := range results {
		totalVotes += row.Votes
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "totalVotes": totalVotes})
}

type voterRollRow struct {
	ID        uint      `json:"id" gorm:"column:id"`
	Username  string    `json:"username" gorm:"column:username"`
	Email     string    `json:"email" gorm:"column:email"`
	Candidate string    `json:"candidate" gorm:"column:candidate"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

// VotersForElection returns the full voter/choice roll for an election
// (admin only). Ballots here are deliberately not secret.
func VotersForElection(c *gin.Context) {
	voters := []voterRollRow{}
	err := config.DB.Model(&models.Vote{}).
		Select("votes.id AS id, users.username, users.email, candidates.full_name AS candidate, votes.created_at").
		Joins("JOIN users ON users.id = votes.user_id").
		Joins("JOIN candidates ON candidates.id = votes.candidate_id").
		Where("votes.election_id = ?", c.Param("electionId")).
		Scan(&voters).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, voters)
}

// participation is round(100 * votes / voters), and 0 when there are no
// voters at all.
func participation(votes, voters int64) int {
	if voters == 0 {
		return 0
	}
	return int(math.Round(float64(votes) / float64(voters) * 100))
}

func activeElections(now time.Time) ([]models.Election, error) {
	var elections []models.Election
	err := config.DB.
		Where("start_date <= ? AND end_date >= ?", now, now).
		Find(&elections).Error
	for i := range elections {
		elections[i].Status = models.ElectionActive
	}
	return elections, err
}

// AdminStats feeds the admin dashboard: platform totals plus the active
// elections annotated with voter participation.
func AdminStats(c *gin.Context) {
	var totalElections, totalCandidates, totalVoters int64
	config.DB.Model(&models.Election{}).Count(&totalElections)
	config.DB.Model(&models.Candidate{}).Count(&totalCandidates)
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleVoter).Count(&totalVoters)

	active, err := activeElections(models.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	type electionWithParticipation struct {
		models.Election
		VoterParticipation int `json:"voterParticipation"`
	}
	detailed := make([]electionWithParticipation, 0, len(active))
	for _, election := range active {
		var votes int64
		config.DB.Model(&models.Vote{}).Where("election_id = ?", election.ID).Count(&votes)
		detailed = append(detailed, electionWithParticipation{
			Election:           election,
			VoterParticipation: participation(votes, totalVoters),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"totalElections":       totalElections,
			"totalCandidates":      totalCandidates,
			"totalVoters":          totalVoters,
			"activeElectionsCount": len(active),
		},
		"activeElections": detailed,
	})
}

// VoterStats feeds the voter dashboard: the active elections with their
// candidate counts and participation.
func VoterStats(c *gin.Context) {
	active, err := activeElections(models.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	var totalVoters int64
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleVoter).Count(&totalVoters)

	var registeredCandidates int64
	if len(active) > 0 {
		ids := make([]uint, len(active))
		for i, election := range active {
			ids[i] = election.ID
		}
		config.DB.Model(&models.Candidate{}).Where("election_id IN ?", ids).Count(&registeredCandidates)
	}

	type electionDetails struct {
		models.Election
		CandidateCount     int64 `json:"candidateCount"`
		VoterParticipation int   `json:"voterParticipation"`
	}
	detailed := make([]electionDetails, 0, len(active))
	for _, election := range active {
		var candidates, votes int64
		config.DB.Model(&models.Candidate{}).Where("election_id = ?", election.ID).Count(&candidates)
		config.DB.Model(&models.Vote{}).Where("election_id = ?", election.ID).Count(&votes)
		detailed = append(detailed, electionDetails{
			Election:           election,
			CandidateCount:     candidates,
			VoterParticipation: participation(votes, totalVoters),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"activeElections":      len(active),
			"registeredCandidates": registeredCandidates,
		},
		"activeElections": detailed,
	})
}
