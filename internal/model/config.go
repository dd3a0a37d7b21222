package model

const DefaultLogLimit = 100

// Config is the whole server-held configuration. Task order is significant.
type Config struct {
	Tasks        []Task `json:"tasks"`
	LogLimit     int    `json:"log_limit"`
	RunOnStartup bool   `json:"run_on_startup"`
}

// DefaultConfig is the draft shown before the first successful load.
func DefaultConfig() Config {
	return Config{
		Tasks:        []Task{},
		LogLimit:     DefaultLogLimit,
		RunOnStartup: true,
	}
}

func (c Config) Clone() Config {
	out := c
	out.Tasks = make([]Task, len(c.Tasks))
	for i, t := range c.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// IDs returns the set of task ids currently in use.
func (c Config) IDs() map[string]bool {
	ids := make(map[string]bool, len(c.Tasks))
	for _, t := range c.Tasks {
		ids[t.ID] = true
	}
	return ids
}

// FindTaskByName returns the index of the first task named name, or -1.
func (c Config) FindTaskByName(name string) int {
	for i, t := range c.Tasks {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// ConfigPatch is a server response decoded field by field. Nil fields were absent
// and keep whatever value the draft already had.
type ConfigPatch struct {
	Tasks        *[]Task `json:"tasks"`
	LogLimit     *int    `json:"log_limit"`
	RunOnStartup *bool   `json:"run_on_startup"`
}

// ApplyTo merges p over base and returns the result. base is not modified.
func (p ConfigPatch) ApplyTo(base Config) Config {
	out := base.Clone()
	if p.Tasks != nil {
		out.Tasks = make([]Task, len(*p.Tasks))
		for i, t := range *p.Tasks {
			out.Tasks[i] = t.Clone()
		}
	}
	if p.LogLimit != nil {
		out.LogLimit = *p.LogLimit
	}
	if p.RunOnStartup != nil {
		out.RunOnStartup = *p.RunOnStartup
	}
	return out
}

// PatchOf is the full patch for cfg, used when a whole config is loaded from a file.
func PatchOf(cfg Config) ConfigPatch {
	c := cfg.Clone()
	return ConfigPatch{Tasks: &c.Tasks, LogLimit: &c.LogLimit, RunOnStartup: &c.RunOnStartup}
}
