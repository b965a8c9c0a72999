package constants

// Роли пользователей.
const (
	RoleManager    = "manager"
	RoleTechnician = "technician"
	RoleUser       = "user"
)

// Типы заявок на обслуживание.
const (
	RequestTypeCorrective = "corrective"
	RequestTypePreventive = "preventive"
)

// Этапы заявки. Этап — свободная метка, переходы не ограничиваются
// (см. DESIGN.md, решение по незащищённой машине состояний).
const (
	StageNew        = "new"
	StageInProgress = "in_progress"
	StageRepaired   = "repaired"
	StageScrap      = "scrap"
)

// RequestStages — фиксированный порядок этапов для сводки дашборда.
var RequestStages = []string{StageNew, StageInProgress, StageRepaired, StageScrap}

// ClosedStages — этапы, на которых заявка считается закрытой.
var ClosedStages = []string{StageRepaired, StageScrap}

func IsValidStage(stage string) bool {
	for _, s := range RequestStages {
		if s == stage {
			return true
		}
	}
	return false
}

func IsValidRequestType(t string) bool {
	return t == RequestTypeCorrective || t == RequestTypePreventive
}

// MaxListLimit — жёсткий потолок для всех списочных выборок.
const MaxListLimit = 1000
