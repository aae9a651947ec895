// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./team.go -destination=../mocks/mock_team_repository.go -package=mocks TeamRepositoryIface
//go:generate mockgen -source=./incident.go -destination=../mocks/mock_incident_repository.go -package=mocks IncidentRepositoryIface
//go:generate mockgen -source=./resource.go -destination=../mocks/mock_resource_repository.go -package=mocks ResourceRepositoryIface
