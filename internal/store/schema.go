package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table layouts, declared the way ent's generated migrate package does.
// Migration is additive: columns and indexes are created, never dropped.

const textSize = 2147483647

var (
	QuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "text", Type: field.TypeString, Size: textSize},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "usage_count", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	QuestionsTable = &schema.Table{
		Name:       "questions",
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "question_difficulty_usage_count", Columns: []*schema.Column{QuestionsColumns[2], QuestionsColumns[3]}},
		},
	}

	QuestionOptionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "text", Type: field.TypeString, Size: textSize},
		{Name: "is_correct", Type: field.TypeBool, Default: false},
	}
	QuestionOptionsTable = &schema.Table{
		Name:       "question_options",
		Columns:    QuestionOptionsColumns,
		PrimaryKey: []*schema.Column{QuestionOptionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "question_options_questions_options",
				Columns:    []*schema.Column{QuestionOptionsColumns[1]},
				RefColumns: []*schema.Column{QuestionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "questionoption_question_id_position", Unique: true, Columns: []*schema.Column{QuestionOptionsColumns[1], QuestionOptionsColumns[2]}},
		},
	}

	QuestionTagsColumns = []*schema.Column{
		{Name: "question_id", Type: field.TypeString},
		{Name: "tag", Type: field.TypeString},
	}
	QuestionTagsTable = &schema.Table{
		Name:       "question_tags",
		Columns:    QuestionTagsColumns,
		PrimaryKey: []*schema.Column{QuestionTagsColumns[0], QuestionTagsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "question_tags_questions_tags",
				Columns:    []*schema.Column{QuestionTagsColumns[0]},
				RefColumns: []*schema.Column{QuestionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "questiontag_tag", Columns: []*schema.Column{QuestionTagsColumns[1]}},
		},
	}

	RoadmapsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "target_role", Type: field.TypeString, Default: ""},
	}
	RoadmapsTable = &schema.Table{
		Name:       "roadmaps",
		Columns:    RoadmapsColumns,
		PrimaryKey: []*schema.Column{RoadmapsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "roadmap_user_id", Columns: []*schema.Column{RoadmapsColumns[1]}},
		},
	}

	RoadmapItemsColumns = []*schema.Column{
		{Name: "roadmap_id", Type: field.TypeString},
		{Name: "id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "title", Type: field.TypeString},
		{Name: "type", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString, Default: ""},
		{Name: "difficulty", Type: field.TypeString, Default: ""},
	}
	RoadmapItemsTable = &schema.Table{
		Name:       "roadmap_items",
		Columns:    RoadmapItemsColumns,
		PrimaryKey: []*schema.Column{RoadmapItemsColumns[0], RoadmapItemsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "roadmap_items_roadmaps_items",
				Columns:    []*schema.Column{RoadmapItemsColumns[0]},
				RefColumns: []*schema.Column{RoadmapsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: textSize, Default: ""},
	}
	LLMRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LLMRequestEventsColumns[1]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[4]}},
		},
	}

	Tables = []*schema.Table{
		QuestionsTable,
		QuestionOptionsTable,
		QuestionTagsTable,
		RoadmapsTable,
		RoadmapItemsTable,
		LLMRequestEventsTable,
	}
)

func init() {
	QuestionOptionsTable.ForeignKeys[0].RefTable = QuestionsTable
	QuestionTagsTable.ForeignKeys[0].RefTable = QuestionsTable
	RoadmapItemsTable.ForeignKeys[0].RefTable = RoadmapsTable
}
