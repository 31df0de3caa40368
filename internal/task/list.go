package task

// List is an ordered task collection. Index arguments are 1-based.
type List struct {
	tasks []*Task
}

func NewList(tasks []*Task) *List {
	l := &List{tasks: make([]*Task, 0, len(tasks))}
	l.tasks = append(l.tasks, tasks...)
	return l
}

func (l *List) Size() int { return len(l.tasks) }

// All returns the live ordered slice. Callers must not modify it.
func (l *List) All() []*Task { return l.tasks }

func (l *List) Get(idx int) (*Task, error) {
	i, err := l.offset(idx)
	if err != nil {
		return nil, err
	}
	return l.tasks[i], nil
}

// Add appends t.
func (l *List) Add(t *Task) {
	l.tasks = append(l.tasks, t)
}

// Delete removes and returns the task at idx.
func (l *List) Delete(idx int) (*Task, error) {
	i, err := l.offset(idx)
	if err != nil {
		return nil, err
	}
	removed := l.tasks[i]
	copy(l.tasks[i:], l.tasks[i+1:])
	l.tasks[len(l.tasks)-1] = nil
	l.tasks = l.tasks[:len(l.tasks)-1]
	return removed, nil
}

func (l *List) Mark(idx int) (*Task, error) {
	t, err := l.Get(idx)
	if err != nil {
		return nil, err
	}
	t.Mark()
	return t, nil
}

func (l *List) Unmark(idx int) (*Task, error) {
	t, err := l.Get(idx)
	if err != nil {
		return nil, err
	}
	t.Unmark()
	return t, nil
}

func (l *List) offset(idx int) (int, error) {
	if idx < 1 || idx > len(l.tasks) {
		return 0, &IndexError{Index: idx, Size: len(l.tasks)}
	}
	return idx - 1, nil
}
