package metrics

// Card move scopes
const (
	MoveScopeWithinColumn = "within_column"
	MoveScopeAcrossColumn = "across_column"
)

// IncrementUserRegistered increments the registration counter
func (m *Metrics) IncrementUserRegistered() {
	m.safeExecute("IncrementUserRegistered", func() {
		m.UserRegisteredTotal.Inc()
	})
}

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementCardMoved counts a completed card move
func (m *Metrics) IncrementCardMoved(scope string) {
	m.safeExecute("IncrementCardMoved", func() {
		m.CardMovedTotal.WithLabelValues(scope).Inc()
	})
}

// IncrementShareGranted counts a newly created share
func (m *Metrics) IncrementShareGranted(level string) {
	m.safeExecute("IncrementShareGranted", func() {
		m.ShareGrantedTotal.WithLabelValues(level).Inc()
	})
}

// AddPositionsRepaired adds the number of positions rewritten by compaction
func (m *Metrics) AddPositionsRepaired(n int) {
	if n <= 0 {
		return
	}
	m.safeExecute("AddPositionsRepaired", func() {
		m.PositionsRepairedTotal.Add(float64(n))
	})
}

// SetUsersTotal sets total users gauge
func (m *Metrics) SetUsersTotal(count int64) {
	m.safeExecute("SetUsersTotal", func() {
		m.UsersTotal.Set(float64(count))
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetCardsTotal sets total cards gauge
func (m *Metrics) SetCardsTotal(count int64) {
	m.safeExecute("SetCardsTotal", func() {
		m.CardsTotal.Set(float64(count))
	})
}
