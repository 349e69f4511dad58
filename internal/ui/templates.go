package ui

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04:05")
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"humanTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return humanize.Time(t)
	},
	"stateColor": func(state string) string {
		// Tailwind badge classes per viewer state.
		switch state {
		case "Approved":
			return "bg-green-100 text-green-800"
		case "Rejected":
			return "bg-red-100 text-red-800"
		case "Pending":
			return "bg-yellow-100 text-yellow-800"
		case "Closed", "LimitReached":
			return "bg-gray-100 text-gray-600"
		default:
			return "bg-indigo-100 text-indigo-800"
		}
	},
	"statusColor": func(status string) string {
		switch status {
		case "Approved":
			return "bg-green-100 text-green-800"
		case "Rejected":
			return "bg-red-100 text-red-800"
		default:
			return "bg-yellow-100 text-yellow-800"
		}
	},
	"add": func(a, b int) int {
		return a + b
	},
	"sub": func(a, b int) int {
		return a - b
	},
	"join": func(items []string, sep string) string {
		return strings.Join(items, sep)
	},
	"lines": func(items []string) string {
		return strings.Join(items, "\n")
	},
	"truncate": func(s string, n int) string {
		if len(s) <= n {
			return s
		}
		return s[:n] + "..."
	},
	"urlquery": func(s string) string {
		return template.URLQueryEscaper(s)
	},
}

// renderTemplate renders a template with the given data.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	_, err = tmpl.New("content").Parse(content)
	if err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	// Add shared components.
	for compName, compContent := range templates {
		if strings.HasPrefix(compName, "components/") {
			_, err = tmpl.New(filepath.Base(compName)).Parse(compContent)
			if err != nil {
				return fmt.Errorf("parse component %s: %w", compName, err)
			}
		}
	}

	return tmpl.Execute(w, data)
}

// templates holds all template content.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <script src="https://cdn.tailwindcss.com"></script>
    <link rel="stylesheet" href="/static/css/app.css">
</head>
<body class="bg-gray-50 min-h-screen">
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/campaigns" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">
                        Matchably
                    </a>
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                        <a href="/campaigns" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            Campaigns
                        </a>
                        {{if .Session}}
                        <a href="/applications" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            My Applications
                        </a>
                        <a href="/rewards" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            Rewards
                        </a>
                        {{if .Session.IsAdmin}}
                        <a href="/admin" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            Admin
                        </a>
                        {{end}}
                        {{end}}
                    </div>
                </div>
                <div class="flex items-center">
                    {{if .Session}}
                    <a href="/profile" class="text-sm text-gray-500 mr-4 hover:text-gray-700">{{.Session.Name}}</a>
                    <a href="/logout" class="text-sm text-gray-500 hover:text-gray-700">Sign Out</a>
                    {{else}}
                    <a href="/login" class="text-sm text-gray-500 mr-4 hover:text-gray-700">Sign In</a>
                    <a href="/signup" class="text-sm text-indigo-600 hover:text-indigo-700">Sign Up</a>
                    {{end}}
                </div>
            </div>
        </div>
    </nav>

    <main class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"components/banner": `{{if .Error}}
<div class="rounded-md bg-red-50 p-4 mb-4">
    <div class="text-sm text-red-700">{{.Error}}</div>
</div>
{{end}}
{{if .Notice}}
<div class="rounded-md bg-green-50 p-4 mb-4">
    <div class="text-sm text-green-700">{{.Notice}}</div>
</div>
{{end}}`,

	"login": `{{define "content"}}
<div class="flex items-center justify-center py-12 px-4 sm:px-6 lg:px-8">
    <div class="max-w-md w-full space-y-8">
        <div>
            <h2 class="mt-6 text-center text-3xl font-extrabold text-gray-900">Sign in to Matchably</h2>
        </div>
        {{template "banner" .}}
        <form class="mt-8 space-y-6" action="/login" method="POST">
            <div class="rounded-md shadow-sm -space-y-px">
                <div>
                    <label for="email" class="sr-only">Email</label>
                    <input id="email" name="email" type="email" required
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 text-gray-900 rounded-t-md sm:text-sm"
                           placeholder="Email">
                </div>
                <div>
                    <label for="password" class="sr-only">Password</label>
                    <input id="password" name="password" type="password" required
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 text-gray-900 rounded-b-md sm:text-sm"
                           placeholder="Password">
                </div>
            </div>
            <div>
                <button type="submit"
                        class="w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">
                    Sign in
                </button>
            </div>
            <p class="text-center text-sm text-gray-600">
                No account? <a href="/signup" class="text-indigo-600 hover:text-indigo-700">Sign up</a>
            </p>
        </form>
    </div>
</div>
{{end}}`,

	"signup": `{{define "content"}}
<div class="flex items-center justify-center py-12 px-4 sm:px-6 lg:px-8">
    <div class="max-w-md w-full space-y-8">
        <h2 class="mt-6 text-center text-3xl font-extrabold text-gray-900">Create your account</h2>
        {{template "banner" .}}
        <form class="mt-8 space-y-6" action="/signup" method="POST">
            <div class="rounded-md shadow-sm space-y-3">
                <input name="name" type="text" required placeholder="Name"
                       class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                <input name="email" type="email" required placeholder="Email"
                       class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                <input name="password" type="password" required placeholder="Password"
                       class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                <input name="referral_code" type="text" placeholder="Referral code (optional)"
                       class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
            </div>
            <button type="submit"
                    class="w-full py-2 px-4 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">
                Sign up
            </button>
        </form>
    </div>
</div>
{{end}}`,

	"campaigns/list": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="mb-6 flex justify-between items-center">
        <h1 class="text-2xl font-semibold text-gray-900">Campaigns</h1>
        {{if .Session}}
        <span class="text-sm text-gray-500">{{.AppliedThisMonth}} of {{.ApplyLimit}} applications this month</span>
        {{end}}
    </div>
    {{template "banner" .}}

    {{if not .Rows}}
    <p class="text-gray-500">No campaigns available right now.</p>
    {{end}}

    <div class="grid grid-cols-1 gap-5 sm:grid-cols-2 lg:grid-cols-3">
        {{range .Rows}}
        <div class="bg-white shadow rounded-lg overflow-hidden">
            {{if .Campaign.Image}}
            <img src="{{.Campaign.Image}}" alt="" class="h-40 w-full object-cover">
            {{end}}
            <div class="p-5">
                <div class="flex justify-between items-start">
                    <div>
                        <p class="text-sm text-gray-500">{{.Campaign.DisplayBrand}}</p>
                        <h2 class="text-lg font-semibold text-gray-900">
                            <a href="/campaigns/{{.Campaign.ID}}" class="hover:text-indigo-600">{{.Campaign.Title}}</a>
                        </h2>
                    </div>
                    <span class="inline-flex px-2 py-1 text-xs font-medium rounded-full {{stateColor (printf "%s" .State)}}">{{.State}}</span>
                </div>
                <p class="mt-2 text-sm text-gray-600">{{truncate .Campaign.Description 120}}</p>
                <div class="mt-3 text-sm text-gray-500">
                    <span>Closes {{humanTime .Campaign.RecruitmentEndDate}}</span>
                    &middot;
                    <span>{{.Campaign.ApprovedApplicants}}/{{.Campaign.Recruiting}} seats</span>
                </div>
                <div class="mt-4">
                    {{if .Button.Enabled}}
                    <a href="/campaigns/{{.Campaign.ID}}"
                       class="inline-flex px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">{{.Button.Label}}</a>
                    {{else}}
                    <span class="inline-flex px-4 py-2 text-sm font-medium rounded-md text-gray-500 bg-gray-100 cursor-not-allowed">{{.Button.Label}}</span>
                    {{end}}
                </div>
            </div>
        </div>
        {{end}}
    </div>
</div>
{{end}}`,

	"campaigns/detail": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-3xl mx-auto">
    {{template "banner" .}}
    <div class="bg-white shadow rounded-lg p-6">
        <p class="text-sm text-gray-500">{{.Row.Campaign.DisplayBrand}}</p>
        <div class="flex justify-between items-start">
            <h1 class="text-2xl font-semibold text-gray-900">{{.Row.Campaign.Title}}</h1>
            <span class="inline-flex px-2 py-1 text-xs font-medium rounded-full {{stateColor (printf "%s" .Row.State)}}">{{.Row.State}}</span>
        </div>
        {{if .Row.Campaign.Image}}
        <img src="{{.Row.Campaign.Image}}" alt="" class="mt-4 rounded-md max-h-72 object-cover">
        {{end}}
        <p class="mt-4 text-gray-700">{{.Row.Campaign.Description}}</p>
        <dl class="mt-6 grid grid-cols-2 gap-4 text-sm">
            <div><dt class="text-gray-500">Platforms</dt><dd class="text-gray-900">{{join .Row.Campaign.Platforms ", "}}</dd></div>
            <div><dt class="text-gray-500">Recruitment ends</dt><dd class="text-gray-900">{{formatDate .Row.Campaign.RecruitmentEndDate}} ({{humanTime .Row.Campaign.RecruitmentEndDate}})</dd></div>
            <div><dt class="text-gray-500">Content deadline</dt><dd class="text-gray-900">{{formatDate .Row.Campaign.Deadline}}</dd></div>
            <div><dt class="text-gray-500">Seats</dt><dd class="text-gray-900">{{.Row.Campaign.ApprovedApplicants}}/{{.Row.Campaign.Recruiting}}</dd></div>
        </dl>

        {{if .Row.Reason}}
        <div class="mt-6 rounded-md bg-red-50 p-4">
            <p class="text-sm font-medium text-red-800">Rejection reason</p>
            <p class="text-sm text-red-700">{{.Row.Reason}}</p>
        </div>
        {{end}}

        <div class="mt-8">
            {{if eq (printf "%s" .Row.State) "SignInRequired"}}
            <a href="/login" class="inline-flex px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Sign In to Apply</a>
            {{else if .Row.Button.Enabled}}
            <form action="/campaigns/{{.Row.Campaign.ID}}/apply" method="POST" class="space-y-3 max-w-md">
                <input name="name" type="text" placeholder="Name" class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                <input name="phone" type="text" required placeholder="Phone" class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                <input name="address" type="text" required placeholder="Address" class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                <div class="grid grid-cols-3 gap-2">
                    <input name="city" type="text" placeholder="City" class="px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                    <input name="state" type="text" placeholder="State" class="px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                    <input name="zip" type="text" placeholder="ZIP" class="px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                </div>
                <input name="instagram_id" type="text" placeholder="Instagram handle" class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                <input name="tiktok_id" type="text" placeholder="TikTok handle" class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                <button type="submit" class="px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">{{.Row.Button.Label}}</button>
            </form>
            {{else}}
            <span class="inline-flex px-4 py-2 text-sm font-medium rounded-md text-gray-500 bg-gray-100 cursor-not-allowed">{{.Row.Button.Label}}</span>
            {{end}}
        </div>
    </div>
</div>
{{end}}`,

	"applications/list": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="mb-6 flex justify-between items-center">
        <h1 class="text-2xl font-semibold text-gray-900">My Applications</h1>
        <span class="text-sm text-gray-500">{{.AppliedThisMonth}} of {{.ApplyLimit}} applications this month</span>
    </div>
    {{template "banner" .}}

    {{if not .Rows}}
    <p class="text-gray-500">You have not applied to any campaigns yet.</p>
    {{else}}
    <div class="bg-white shadow rounded-lg overflow-hidden">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Campaign</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Brand</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Status</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Reason</th>
                    <th class="px-6 py-3"></th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Rows}}
                <tr>
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">
                        <a href="/campaigns/{{.Campaign.ID}}" class="hover:text-indigo-600">{{.Campaign.Title}}</a>
                    </td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.Campaign.DisplayBrand}}</td>
                    <td class="px-6 py-4">
                        <span class="inline-flex px-2 py-1 text-xs font-medium rounded-full {{statusColor (printf "%s" .Status)}}">{{.Status}}</span>
                    </td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{if .Reason}}{{.Reason}}{{else}}-{{end}}</td>
                    <td class="px-6 py-4 text-right text-sm">
                        {{if eq (printf "%s" .Status) "Approved"}}
                        <a href="/campaigns/{{.Campaign.ID}}/submission" class="text-indigo-600 hover:text-indigo-700">Submit content</a>
                        {{end}}
                    </td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>
    {{end}}
</div>
{{end}}`,

	"submissions/form": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-2xl mx-auto">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Content Submission</h1>
    {{template "banner" .}}
    <div class="bg-white shadow rounded-lg p-6">
        <form action="/campaigns/{{.CampaignID}}/submission" method="POST" class="space-y-4">
            <div>
                <label class="block text-sm font-medium text-gray-700">Instagram post URLs (one per line)</label>
                <textarea name="instagram_urls" rows="3"
                          class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">{{if .Submission}}{{lines .Submission.InstagramURLs}}{{end}}</textarea>
            </div>
            <div>
                <label class="block text-sm font-medium text-gray-700">TikTok post URLs (one per line)</label>
                <textarea name="tiktok_urls" rows="3"
                          class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">{{if .Submission}}{{lines .Submission.TikTokURLs}}{{end}}</textarea>
            </div>
            <div class="flex justify-between">
                <button type="submit" class="px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">
                    {{if .Submission}}Update submission{{else}}Submit{{end}}
                </button>
                {{if .Submission}}
                <button type="button"
                        hx-delete="/campaigns/{{.CampaignID}}/submission"
                        hx-confirm="Remove this submission?"
                        class="px-4 py-2 text-sm font-medium rounded-md text-red-600 bg-red-50 hover:bg-red-100">
                    Delete
                </button>
                {{end}}
            </div>
        </form>
    </div>
</div>
{{end}}`,

	"rewards": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-3xl mx-auto">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Rewards</h1>
    {{template "banner" .}}

    <div class="bg-white shadow rounded-lg p-6 mb-6">
        <p class="text-sm text-gray-500">Point balance</p>
        <p class="text-3xl font-bold text-indigo-600">{{.Balance.Points}}</p>
    </div>

    {{if .Tiers}}
    <div class="bg-white shadow rounded-lg p-6 mb-6">
        <h2 class="text-lg font-semibold text-gray-900 mb-4">Redeem</h2>
        <div class="space-y-3">
            {{range .Tiers}}
            <form action="/rewards/redeem" method="POST" class="flex justify-between items-center">
                <span class="text-sm text-gray-900">{{.Name}} ({{.Points}} points)</span>
                <input type="hidden" name="tier_id" value="{{.ID}}">
                <button type="submit" class="px-3 py-1 text-sm rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Redeem</button>
            </form>
            {{end}}
        </div>
    </div>
    {{end}}

    {{if .Referral}}
    <div class="bg-white shadow rounded-lg p-6">
        <h2 class="text-lg font-semibold text-gray-900 mb-2">Referrals</h2>
        <p class="text-sm text-gray-500 mb-2">Share your link: <span class="text-gray-900">{{.Referral.ReferralLink}}</span></p>
        {{if .Referral.Progress}}<p class="text-sm text-gray-500">{{.Referral.Progress}}</p>{{end}}
        {{if .Referral.Table}}
        <table class="mt-4 min-w-full divide-y divide-gray-200 text-sm">
            <thead><tr>
                <th class="py-2 text-left text-xs font-medium text-gray-500 uppercase">Name</th>
                <th class="py-2 text-left text-xs font-medium text-gray-500 uppercase">Status</th>
                <th class="py-2 text-left text-xs font-medium text-gray-500 uppercase">Points</th>
            </tr></thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Referral.Table}}
                <tr><td class="py-2">{{.Name}}</td><td class="py-2">{{.Status}}</td><td class="py-2">{{.Points}}</td></tr>
                {{end}}
            </tbody>
        </table>
        {{end}}
    </div>
    {{end}}
</div>
{{end}}`,

	"profile": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-2xl mx-auto">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Profile</h1>
    {{template "banner" .}}

    <div class="bg-white shadow rounded-lg p-6 mb-6">
        <dl class="grid grid-cols-2 gap-4 text-sm">
            <div><dt class="text-gray-500">Name</dt><dd class="text-gray-900">{{.User.Name}}</dd></div>
            <div><dt class="text-gray-500">Email</dt><dd class="text-gray-900">{{.User.Email}}</dd></div>
        </dl>
    </div>

    <div class="bg-white shadow rounded-lg p-6 mb-6">
        <h2 class="text-lg font-semibold text-gray-900 mb-4">Social handles</h2>
        <form action="/profile/social" method="POST" class="space-y-3">
            <input name="instagram_id" type="text" value="{{.User.InstagramID}}" placeholder="Instagram handle"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
            <input name="tiktok_id" type="text" value="{{.User.TikTokID}}" placeholder="TikTok handle"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
            <button type="submit" class="px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Save</button>
        </form>
    </div>

    <div class="bg-white shadow rounded-lg p-6">
        <h2 class="text-lg font-semibold text-gray-900 mb-4">Change password</h2>
        <form action="/profile/password" method="POST" class="space-y-3">
            <input name="old_password" type="password" required placeholder="Current password"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
            <input name="new_password" type="password" required placeholder="New password"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
            <button type="submit" class="px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Change password</button>
        </form>
    </div>
</div>
{{end}}`,

	"admin/campaigns": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="mb-6 flex justify-between items-center">
        <h1 class="text-2xl font-semibold text-gray-900">Campaigns</h1>
        <a href="/admin/campaigns/new" class="px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">New Campaign</a>
    </div>
    {{template "banner" .}}

    <div class="bg-white shadow rounded-lg overflow-hidden">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Title</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Brand</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Status</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Seats</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Recruitment ends</th>
                    <th class="px-6 py-3"></th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Campaigns}}
                <tr id="campaign-{{.ID}}">
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">{{.Title}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.DisplayBrand}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.Status}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.ApprovedApplicants}}/{{.Recruiting}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{formatDate .RecruitmentEndDate}}</td>
                    <td class="px-6 py-4 text-right text-sm space-x-3">
                        <a href="/admin/campaigns/{{.ID}}/applicants" class="text-indigo-600 hover:text-indigo-700">Applicants</a>
                        <a href="/admin/campaigns/{{.ID}}/edit" class="text-indigo-600 hover:text-indigo-700">Edit</a>
                        <button hx-delete="/admin/campaigns/{{.ID}}"
                                hx-target="#campaign-{{.ID}}" hx-swap="outerHTML"
                                hx-confirm="Delete this campaign?"
                                class="text-red-600 hover:text-red-700">Delete</button>
                    </td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>

    <div class="mt-4 flex justify-between text-sm">
        {{if gt .Page 1}}<a href="/admin/campaigns?page={{.PrevPage}}" class="text-indigo-600">&larr; Previous</a>{{else}}<span></span>{{end}}
        <a href="/admin/campaigns?page={{.NextPage}}" class="text-indigo-600">Next &rarr;</a>
    </div>
</div>
{{end}}`,

	"admin/campaign_form": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-2xl mx-auto">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">{{if .Campaign}}Edit Campaign{{else}}New Campaign{{end}}</h1>
    {{template "banner" .}}
    <div class="bg-white shadow rounded-lg p-6">
        <form action="{{if .Campaign}}/admin/campaigns/{{.ID}}/edit{{else}}/admin/campaigns{{end}}" method="POST" class="space-y-4">
            <input name="title" type="text" required placeholder="Campaign title"
                   value="{{if .Campaign}}{{.Campaign.Title}}{{end}}"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
            <input name="brand" type="text" required placeholder="Brand name (prefix with # for public)"
                   value="{{if .Campaign}}{{.Campaign.Brand}}{{end}}"
                   {{if .Brands}}list="brands"{{end}}
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
            {{if .Brands}}
            <datalist id="brands">
                {{range .Brands}}<option value="{{.}}"></option>{{end}}
            </datalist>
            {{end}}
            <textarea name="description" rows="4" placeholder="Product description"
                      class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">{{if .Campaign}}{{.Campaign.Description}}{{end}}</textarea>
            <input name="image" type="text" placeholder="Image URL"
                   value="{{if .Campaign}}{{.Campaign.Image}}{{end}}"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
            <div class="grid grid-cols-2 gap-4">
                <label class="text-sm text-gray-700">Recruitment end
                    <input name="recruitment_end_date" type="date"
                           value="{{if .Campaign}}{{formatDate .Campaign.RecruitmentEndDate}}{{end}}"
                           class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                </label>
                <label class="text-sm text-gray-700">Content deadline
                    <input name="deadline" type="date"
                           value="{{if .Campaign}}{{formatDate .Campaign.Deadline}}{{end}}"
                           class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                </label>
            </div>
            <div class="grid grid-cols-2 gap-4">
                <label class="text-sm text-gray-700">Seats
                    <input name="recruiting" type="number" min="0"
                           value="{{if .Campaign}}{{.Campaign.Recruiting}}{{end}}"
                           class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                </label>
                <label class="text-sm text-gray-700">Status
                    <select name="status" class="mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
                        <option value="Active">Active</option>
                        <option value="Deactive" {{if .Campaign}}{{if eq (printf "%s" .Campaign.Status) "Deactive"}}selected{{end}}{{end}}>Deactive</option>
                    </select>
                </label>
            </div>
            <div class="text-sm text-gray-700">
                Platforms:
                <label class="ml-2"><input type="checkbox" name="platforms" value="Instagram"> Instagram</label>
                <label class="ml-2"><input type="checkbox" name="platforms" value="TikTok"> TikTok</label>
            </div>
            <button type="submit" class="px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Save</button>
        </form>
    </div>
</div>
{{end}}`,

	"admin/applicants": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="mb-6 flex justify-between items-center">
        <h1 class="text-2xl font-semibold text-gray-900">Applicants</h1>
        <div class="text-sm space-x-4">
            <span class="text-gray-500">{{.ApprovedCount}} approved</span>
            <a href="/admin/campaigns/{{.CampaignID}}/applicants/export" class="text-indigo-600 hover:text-indigo-700">Export CSV</a>
        </div>
    </div>
    {{template "banner" .}}

    <div class="bg-white shadow rounded-lg overflow-hidden">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Name</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Email</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Social</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Status</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Decide</th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{$campaignID := .CampaignID}}
                {{range .Applicants}}
                <tr>
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">{{.Name}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.Email}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">
                        {{if .InstagramID}}IG: {{.InstagramID}}{{end}}
                        {{if .TikTokID}} TT: {{.TikTokID}}{{end}}
                    </td>
                    <td class="px-6 py-4">
                        <span class="inline-flex px-2 py-1 text-xs font-medium rounded-full {{statusColor (printf "%s" .Status)}}">{{.Status}}</span>
                    </td>
                    <td class="px-6 py-4 text-sm">
                        <form action="/admin/campaigns/{{$campaignID}}/applicants/{{.ID}}/status" method="POST" class="flex items-center space-x-2">
                            <select name="status" class="px-2 py-1 border border-gray-300 rounded-md text-sm">
                                <option value="Approved">Approve</option>
                                <option value="Rejected">Reject</option>
                            </select>
                            <input name="rejection_reason" type="text" placeholder="Reason"
                                   class="px-2 py-1 border border-gray-300 rounded-md text-sm">
                            <label class="text-xs text-gray-500"><input type="checkbox" name="show_reason"> visible</label>
                            <button type="submit" class="px-3 py-1 text-sm rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Save</button>
                        </form>
                    </td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>

    <div class="mt-4 flex justify-between text-sm">
        {{if gt .Page 1}}<a href="/admin/campaigns/{{.CampaignID}}/applicants?page={{.PrevPage}}" class="text-indigo-600">&larr; Previous</a>{{else}}<span></span>{{end}}
        <a href="/admin/campaigns/{{.CampaignID}}/applicants?page={{.NextPage}}" class="text-indigo-600">Next &rarr;</a>
    </div>
</div>
{{end}}`,

	"admin/users": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Users</h1>
    {{template "banner" .}}

    <div class="bg-white shadow rounded-lg overflow-hidden">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Name</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Email</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Verified</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Blocked</th>
                    <th class="px-6 py-3"></th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Users}}
                <tr>
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">{{.Name}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.Email}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{if .Verified}}Yes{{else}}No{{end}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{if .Blocked}}Yes{{else}}No{{end}}</td>
                    <td class="px-6 py-4 text-right text-sm space-x-3">
                        {{if not .Verified}}
                        <form action="/admin/users/{{.ID}}/verify" method="POST" class="inline">
                            <button type="submit" class="text-indigo-600 hover:text-indigo-700">Verify</button>
                        </form>
                        {{end}}
                        <form action="/admin/users/{{.ID}}/block" method="POST" class="inline">
                            <input type="hidden" name="blocked" value="{{if .Blocked}}false{{else}}true{{end}}">
                            <button type="submit" class="{{if .Blocked}}text-green-600 hover:text-green-700{{else}}text-red-600 hover:text-red-700{{end}}">
                                {{if .Blocked}}Unblock{{else}}Block{{end}}
                            </button>
                        </form>
                    </td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>

    <div class="mt-4 flex justify-between text-sm">
        {{if gt .Page 1}}<a href="/admin/users?page={{.PrevPage}}" class="text-indigo-600">&larr; Previous</a>{{else}}<span></span>{{end}}
        <a href="/admin/users?page={{.NextPage}}" class="text-indigo-600">Next &rarr;</a>
    </div>
</div>
{{end}}`,

	"admin/rewards": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-3xl mx-auto">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Rewards Admin</h1>
    {{template "banner" .}}

    <div class="bg-white shadow rounded-lg p-6 mb-6">
        <h2 class="text-lg font-semibold text-gray-900 mb-4">Adjust points</h2>
        <form action="/admin/rewards/adjust" method="POST" class="flex items-end space-x-3">
            <input name="email" type="email" required placeholder="User email"
                   class="px-3 py-2 border border-gray-300 rounded-md sm:text-sm flex-1">
            <input name="points" type="number" required placeholder="Points"
                   class="px-3 py-2 border border-gray-300 rounded-md sm:text-sm w-28">
            <input name="reason" type="text" required placeholder="Reason"
                   class="px-3 py-2 border border-gray-300 rounded-md sm:text-sm flex-1">
            <button type="submit" class="px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Apply</button>
        </form>
    </div>

    <div class="bg-white shadow rounded-lg overflow-hidden">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Email</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Tier</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Points</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Status</th>
                    <th class="px-6 py-3"></th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Transactions}}
                <tr>
                    <td class="px-6 py-4 text-sm text-gray-900">{{.Email}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.Tier}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.Points}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.Status}}</td>
                    <td class="px-6 py-4 text-right text-sm">
                        {{if eq .Status "pending"}}
                        <form action="/admin/rewards/{{.ID}}/decision" method="POST" class="inline space-x-2">
                            <button name="decision" value="approved" class="text-green-600 hover:text-green-700">Approve</button>
                            <button name="decision" value="denied" class="text-red-600 hover:text-red-700">Deny</button>
                        </form>
                        {{end}}
                    </td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>
</div>
{{end}}`,

	"error": `{{define "content"}}
<div class="px-4 py-16 text-center">
    <h1 class="text-2xl font-semibold text-gray-900">{{.Message}}</h1>
    <p class="mt-4"><a href="/campaigns" class="text-indigo-600 hover:text-indigo-700">Back to campaigns</a></p>
</div>
{{end}}`,
}
