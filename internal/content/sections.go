package content

import (
	"sort"
	"strconv"
	"strings"
)

// 题库为静态只读数据：板块与题目在发布时固定，运行期没有任何写路径。

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
)

type QuestionCategory string

const (
	Warmup    QuestionCategory = "warmup"
	General   QuestionCategory = "general"
	Quickfire QuestionCategory = "quickfire"
)

type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"question"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
	// CorrectAnswer 选择题为正确选项下标（十进制字符串），判断题为 "true"/"false"
	CorrectAnswer string           `json:"-"`
	Explanation   string           `json:"-"`
	TimeLimit     int              `json:"timeLimit"` // 秒
	Points        int              `json:"points"`
	Category      QuestionCategory `json:"category"`
}

type Section struct {
	Number      int        `json:"sectionNumber"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty"`
	Duration    int        `json:"duration"` // 分钟
	Questions   []Question `json:"questions"`
}

// CheckAnswer 判卷。选择题提交选项下标，判断题提交 true/false，大小写与空白不敏感。
func CheckAnswer(q *Question, answer string) bool {
	submitted := strings.ToLower(strings.TrimSpace(answer))
	if submitted == "" {
		return false
	}
	switch q.Type {
	case TrueFalse:
		return submitted == q.CorrectAnswer
	case MultipleChoice:
		idx, err := strconv.Atoi(submitted)
		if err != nil || idx < 0 || idx >= len(q.Options) {
			return false
		}
		return strconv.Itoa(idx) == q.CorrectAnswer
	}
	return false
}

// GetSection 按板块编号取板块，不存在返回 nil
func GetSection(number int) *Section {
	sec, ok := sections[number]
	if !ok {
		return nil
	}
	return &sec
}

// GetQuestion 在指定板块里找题
func GetQuestion(sectionNumber int, questionID string) *Question {
	sec, ok := sections[sectionNumber]
	if !ok {
		return nil
	}
	for i := range sec.Questions {
		if sec.Questions[i].ID == questionID {
			return &sec.Questions[i]
		}
	}
	return nil
}

// AllSections 返回按编号排序的全部板块
func AllSections() []Section {
	out := make([]Section, 0, len(sections))
	for _, sec := range sections {
		out = append(out, sec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

var sections = map[int]Section{
	1: {
		Number:      1,
		Title:       "HTML Fundamentals",
		Description: "Master the structure and semantics of HTML5",
		Difficulty:  "beginner",
		Duration:    25,
		Questions: []Question{
			{
				ID:            "html-1",
				Text:          "What does HTML stand for?",
				Type:          MultipleChoice,
				Options:       []string{"HyperText Markup Language", "High Tech Modern Language", "Home Tool Markup Language", "HyperText Machine Language"},
				CorrectAnswer: "0",
				Explanation:   "HTML stands for HyperText Markup Language, the standard language for creating web pages.",
				TimeLimit:     30,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "html-2",
				Text:          "HTML is a programming language",
				Type:          TrueFalse,
				CorrectAnswer: "false",
				Explanation:   "HTML is a markup language, not a programming language. It defines structure and content.",
				TimeLimit:     30,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "html-3",
				Text:          "Which HTML tag is used for the largest heading?",
				Type:          MultipleChoice,
				Options:       []string{"<h1>", "<h6>", "<header>", "<heading>"},
				CorrectAnswer: "0",
				Explanation:   "The <h1> tag represents the largest heading in HTML.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "html-4",
				Text:          "What is the correct HTML tag for creating a hyperlink?",
				Type:          MultipleChoice,
				Options:       []string{"<link>", "<a>", "<href>", "<url>"},
				CorrectAnswer: "1",
				Explanation:   "The <a> (anchor) tag is used to create hyperlinks in HTML.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "html-5",
				Text:          "The <br> tag requires a closing tag",
				Type:          TrueFalse,
				CorrectAnswer: "false",
				Explanation:   "The <br> tag is a self-closing tag and does not require a closing tag.",
				TimeLimit:     30,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "html-6",
				Text:          "Which attribute specifies the destination of a link?",
				Type:          MultipleChoice,
				Options:       []string{"src", "href", "link", "url"},
				CorrectAnswer: "1",
				Explanation:   "The href attribute specifies the URL or destination of a hyperlink.",
				TimeLimit:     60,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "html-7",
				Text:          "HTML5 introduced semantic elements",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "HTML5 introduced many semantic elements like <article>, <section>, <nav>, etc.",
				TimeLimit:     30,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "html-8",
				Text:          "Which HTML element is used for the main content?",
				Type:          MultipleChoice,
				Options:       []string{"<content>", "<main>", "<primary>", "<body>"},
				CorrectAnswer: "1",
				Explanation:   "The <main> element represents the main content area of a document.",
				TimeLimit:     45,
				Points:        1,
				Category:      Quickfire,
			},
		},
	},
	2: {
		Number:      2,
		Title:       "CSS Styling & Layout",
		Description: "Learn modern CSS techniques and responsive design",
		Difficulty:  "beginner",
		Duration:    30,
		Questions: []Question{
			{
				ID:            "css-1",
				Text:          "What does CSS stand for?",
				Type:          MultipleChoice,
				Options:       []string{"Cascading Style Sheets", "Creative Style Sheets", "Computer Style Sheets", "Colorful Style Sheets"},
				CorrectAnswer: "0",
				Explanation:   "CSS stands for Cascading Style Sheets, used for styling HTML documents.",
				TimeLimit:     30,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "css-2",
				Text:          "CSS can only change colors of elements",
				Type:          TrueFalse,
				CorrectAnswer: "false",
				Explanation:   "CSS controls layout, spacing, typography, animations and much more than colors.",
				TimeLimit:     30,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "css-3",
				Text:          "Which CSS property is used to change the text color?",
				Type:          MultipleChoice,
				Options:       []string{"text-color", "color", "font-color", "text-style"},
				CorrectAnswer: "1",
				Explanation:   "The color property sets the color of text content.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "css-4",
				Text:          "What is the correct syntax for a CSS comment?",
				Type:          MultipleChoice,
				Options:       []string{"// comment", "<!-- comment -->", "/* comment */", "# comment"},
				CorrectAnswer: "2",
				Explanation:   "CSS comments are written between /* and */.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "css-5",
				Text:          "Which CSS property controls the space between elements?",
				Type:          MultipleChoice,
				Options:       []string{"spacing", "margin", "gap", "padding"},
				CorrectAnswer: "1",
				Explanation:   "The margin property controls the space outside an element's border.",
				TimeLimit:     60,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "css-6",
				Text:          "Flexbox is a CSS layout method",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "Flexbox is a one-dimensional layout method for arranging items in rows or columns.",
				TimeLimit:     30,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "css-7",
				Text:          "Which CSS property is used to make text bold?",
				Type:          MultipleChoice,
				Options:       []string{"text-weight", "font-weight", "bold", "text-bold"},
				CorrectAnswer: "1",
				Explanation:   "The font-weight property controls the thickness of text.",
				TimeLimit:     45,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "css-8",
				Text:          "CSS Grid is used for 2D layouts",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "CSS Grid handles two-dimensional layouts with rows and columns.",
				TimeLimit:     30,
				Points:        1,
				Category:      Quickfire,
			},
		},
	},
	3: {
		Number:      3,
		Title:       "JavaScript Essentials",
		Description: "Core JavaScript concepts and ES6+ features",
		Difficulty:  "intermediate",
		Duration:    35,
		Questions: []Question{
			{
				ID:            "js-1",
				Text:          "JavaScript is a compiled language",
				Type:          TrueFalse,
				CorrectAnswer: "false",
				Explanation:   "JavaScript is an interpreted language executed by the browser's engine.",
				TimeLimit:     30,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "js-2",
				Text:          "Which of these is the correct way to declare a variable in ES6?",
				Type:          MultipleChoice,
				Options:       []string{"var name", "let name", "const name", "Both let and const"},
				CorrectAnswer: "3",
				Explanation:   "ES6 introduced both let and const for block-scoped variable declarations.",
				TimeLimit:     45,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "js-3",
				Text:          "What does '===' compare in JavaScript?",
				Type:          MultipleChoice,
				Options:       []string{"Value only", "Type only", "Value and type", "Neither"},
				CorrectAnswer: "2",
				Explanation:   "The strict equality operator compares both value and type without coercion.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "js-4",
				Text:          "Arrow functions were introduced in ES6",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "Arrow functions are an ES6 feature providing a shorter function syntax.",
				TimeLimit:     30,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "js-5",
				Text:          "Which method is used to add an element to the end of an array?",
				Type:          MultipleChoice,
				Options:       []string{"append()", "push()", "add()", "insert()"},
				CorrectAnswer: "1",
				Explanation:   "Array.prototype.push appends one or more elements to the end of an array.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "js-6",
				Text:          "JavaScript is case-sensitive",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "Identifiers in JavaScript are case-sensitive: myVar and myvar are different.",
				TimeLimit:     30,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "js-7",
				Text:          "Which of these is used for asynchronous programming?",
				Type:          MultipleChoice,
				Options:       []string{"callbacks", "promises", "async/await", "All of the above"},
				CorrectAnswer: "3",
				Explanation:   "Callbacks, promises and async/await are all asynchronous programming patterns.",
				TimeLimit:     60,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "js-8",
				Text:          "The 'this' keyword refers to the global object in arrow functions",
				Type:          TrueFalse,
				CorrectAnswer: "false",
				Explanation:   "Arrow functions inherit this from the enclosing lexical scope.",
				TimeLimit:     45,
				Points:        1,
				Category:      Quickfire,
			},
		},
	},
	4: {
		Number:      4,
		Title:       "React & Frontend Frameworks",
		Description: "Component-based development with React",
		Difficulty:  "intermediate",
		Duration:    40,
		Questions: []Question{
			{
				ID:            "react-1",
				Text:          "What is React?",
				Type:          MultipleChoice,
				Options:       []string{"A database", "A JavaScript library", "A CSS framework", "A web server"},
				CorrectAnswer: "1",
				Explanation:   "React is a JavaScript library for building user interfaces.",
				TimeLimit:     30,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "react-2",
				Text:          "React components must return a single parent element",
				Type:          TrueFalse,
				CorrectAnswer: "false",
				Explanation:   "Fragments allow components to return multiple elements without a wrapper.",
				TimeLimit:     30,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "react-3",
				Text:          "Which hook is used for managing component state?",
				Type:          MultipleChoice,
				Options:       []string{"useEffect", "useState", "useContext", "useCallback"},
				CorrectAnswer: "1",
				Explanation:   "useState adds local state to function components.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "react-4",
				Text:          "What is JSX?",
				Type:          MultipleChoice,
				Options:       []string{"A new programming language", "A syntax extension for JavaScript", "A CSS preprocessor", "A database query language"},
				CorrectAnswer: "1",
				Explanation:   "JSX is a syntax extension that lets you write HTML-like markup inside JavaScript.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "react-5",
				Text:          "useEffect runs after every render by default",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "Without a dependency array, useEffect runs after every completed render.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "react-6",
				Text:          "Which method is used to update state in class components?",
				Type:          MultipleChoice,
				Options:       []string{"updateState()", "setState()", "changeState()", "modifyState()"},
				CorrectAnswer: "1",
				Explanation:   "Class components update state through this.setState().",
				TimeLimit:     45,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "react-7",
				Text:          "React uses a Virtual DOM",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "React keeps a virtual representation of the DOM to minimize costly updates.",
				TimeLimit:     30,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "react-8",
				Text:          "Which hook is used for side effects?",
				Type:          MultipleChoice,
				Options:       []string{"useState", "useEffect", "useCallback", "useMemo"},
				CorrectAnswer: "1",
				Explanation:   "useEffect is the hook for running side effects after render.",
				TimeLimit:     45,
				Points:        1,
				Category:      Quickfire,
			},
		},
	},
	5: {
		Number:      5,
		Title:       "Full-Stack Development",
		Description: "Connecting frontend with backend APIs",
		Difficulty:  "advanced",
		Duration:    45,
		Questions: []Question{
			{
				ID:            "fullstack-1",
				Text:          "What does API stand for?",
				Type:          MultipleChoice,
				Options:       []string{"Application Programming Interface", "Advanced Programming Interface", "Application Process Interface", "Automated Programming Interface"},
				CorrectAnswer: "0",
				Explanation:   "API stands for Application Programming Interface.",
				TimeLimit:     30,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "fullstack-2",
				Text:          "REST APIs are stateless",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "Each REST request carries all the information needed to process it.",
				TimeLimit:     30,
				Points:        1,
				Category:      Warmup,
			},
			{
				ID:            "fullstack-3",
				Text:          "Which HTTP method is used to retrieve data?",
				Type:          MultipleChoice,
				Options:       []string{"POST", "GET", "PUT", "DELETE"},
				CorrectAnswer: "1",
				Explanation:   "GET requests retrieve data without modifying server state.",
				TimeLimit:     45,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "fullstack-4",
				Text:          "What is the purpose of middleware in web applications?",
				Type:          MultipleChoice,
				Options:       []string{"To style components", "To handle requests between client and server", "To manage databases", "To create user interfaces"},
				CorrectAnswer: "1",
				Explanation:   "Middleware processes requests in the pipeline between client and server handlers.",
				TimeLimit:     60,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "fullstack-5",
				Text:          "JSON stands for JavaScript Object Notation",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "JSON is a lightweight data-interchange format based on JavaScript object syntax.",
				TimeLimit:     30,
				Points:        1,
				Category:      General,
			},
			{
				ID:            "fullstack-6",
				Text:          "Which status code indicates a successful HTTP request?",
				Type:          MultipleChoice,
				Options:       []string{"404", "500", "200", "401"},
				CorrectAnswer: "2",
				Explanation:   "Status code 200 means the request succeeded.",
				TimeLimit:     45,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "fullstack-7",
				Text:          "CORS stands for Cross-Origin Resource Sharing",
				Type:          TrueFalse,
				CorrectAnswer: "true",
				Explanation:   "CORS is the browser mechanism controlling cross-origin requests.",
				TimeLimit:     30,
				Points:        1,
				Category:      Quickfire,
			},
			{
				ID:            "fullstack-8",
				Text:          "Which database type is MongoDB?",
				Type:          MultipleChoice,
				Options:       []string{"Relational", "NoSQL", "Graph", "Key-value"},
				CorrectAnswer: "1",
				Explanation:   "MongoDB is a document-oriented NoSQL database.",
				TimeLimit:     45,
				Points:        1,
				Category:      Quickfire,
			},
		},
	},
}
