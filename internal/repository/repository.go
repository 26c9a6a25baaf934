package repository

type Repository interface {
	UserRepository
	TeamRepository
	ActivityRepository
	StatsRepository
}
