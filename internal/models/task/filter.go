package task

// Filter сужает выборку списка задач.
// Пустые поля — фильтр не применяется.
type Filter struct {
	Status Status // точное совпадение статуса
	Search string // подстрока без учёта регистра в title ИЛИ description
}
