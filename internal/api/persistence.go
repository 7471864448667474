package api

import (
	"fmt"

	"github.com/julisunkan/Ktrend/internal/db"
	"github.com/julisunkan/Ktrend/internal/research"
)

func saveResearchSession(results []research.KeywordResult) (*research.ResearchSession, error) {
	session, err := research.NewSession(results)
	if err != nil {
		return nil, err
	}
	if err := db.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func recentSessions(limit int) ([]research.ResearchSession, error) {
	var sessions []research.ResearchSession
	err := db.DB.Order("created_at desc").Limit(limit).Find(&sessions).Error
	return sessions, err
}

func sessionByID(id uint) (*research.ResearchSession, error) {
	var session research.ResearchSession
	if err := db.DB.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func deleteSession(id uint) error {
	return db.DB.Delete(&research.ResearchSession{}, id).Error
}
