package services

// Project is a filter option for the first dropdown.
type Project struct {
	ID   string
	Name string
}

// Work belongs to a project.
type Work struct {
	ID        string
	Name      string
	ProjectID string
}

// Activity belongs to a work.
type Activity struct {
	ID     string
	Name   string
	WorkID string
}

// Lookups holds the cascading filter options.
type Lookups struct {
	Projects   []Project
	Works      []Work
	Activities []Activity
}

// WorksFor returns the works of a project in their stored order.
func (l Lookups) WorksFor(projectID string) []Work {
	if projectID == "" {
		return nil
	}
	var out []Work
	for _, w := range l.Works {
		if w.ProjectID == projectID {
			out = append(out, w)
		}
	}
	return out
}

// ActivitiesFor returns the activities of a work in their stored order.
func (l Lookups) ActivitiesFor(workID string) []Activity {
	if workID == "" {
		return nil
	}
	var out []Activity
	for _, a := range l.Activities {
		if a.WorkID == workID {
			out = append(out, a)
		}
	}
	return out
}

func (l Lookups) project(id string) (Project, bool) {
	for _, p := range l.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

func (l Lookups) work(id string) (Work, bool) {
	for _, w := range l.Works {
		if w.ID == id {
			return w, true
		}
	}
	return Work{}, false
}

func (l Lookups) activity(id string) (Activity, bool) {
	for _, a := range l.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// Selection is the current filter choice. Empty strings mean "not chosen".
type Selection struct {
	ProjectID  string
	WorkID     string
	ActivityID string
}

// Complete reports whether all three filters are chosen.
func (s Selection) Complete() bool {
	return s.ProjectID != "" && s.WorkID != "" && s.ActivityID != ""
}

// Normalize drops any choice that does not exist or does not belong to its
// parent choice. Clearing a parent clears its dependents.
func (s Selection) Normalize(l Lookups) Selection {
	if _, ok := l.project(s.ProjectID); !ok {
		return Selection{}
	}
	w, ok := l.work(s.WorkID)
	if !ok || w.ProjectID != s.ProjectID {
		return Selection{ProjectID: s.ProjectID}
	}
	a, ok := l.activity(s.ActivityID)
	if !ok || a.WorkID != s.WorkID {
		return Selection{ProjectID: s.ProjectID, WorkID: s.WorkID}
	}
	return s
}

// Labels returns the display names of the chosen project, work and activity.
func (s Selection) Labels(l Lookups) (project, work, activity string) {
	if p, ok := l.project(s.ProjectID); ok {
		project = p.Name
	}
	if w, ok := l.work(s.WorkID); ok {
		work = w.Name
	}
	if a, ok := l.activity(s.ActivityID); ok {
		activity = a.Name
	}
	return project, work, activity
}
