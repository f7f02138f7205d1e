package publisher

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.CompanyName}} - {{.Tagline}}</title>
    <meta name="description" content="{{.Description}}">
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 1200px; margin: 0 auto; padding: 0 20px; }
        header { border-bottom: 1px solid #e5e7eb; padding: 1rem 0; }
        .header-content { display: flex; justify-content: space-between; align-items: center; }
        .logo { display: flex; align-items: center; gap: 0.5rem; }
        .logo-icon { width: 32px; height: 32px; background: {{.Palette.Primary}}; border-radius: 4px; }
        nav { display: flex; gap: 2rem; align-items: center; }
        nav a { text-decoration: none; color: #6b7280; }
        nav a:hover { color: #111827; }
        .btn { padding: 0.5rem 1rem; border: none; border-radius: 6px; cursor: pointer; text-decoration: none; display: inline-block; }
        .btn-primary { background: {{.Palette.Primary}}; color: white; }
        .btn-outline { border: 1px solid #d1d5db; background: white; color: #374151; }
        .hero { text-align: center; padding: 5rem 0; }
        .badge { background: {{.Palette.Secondary}}; color: {{.Palette.Primary}}; padding: 0.25rem 0.75rem; border-radius: 9999px; font-size: 0.875rem; }
        .hero h1 { font-size: 3rem; margin: 1.5rem 0; font-weight: 600; }
        .hero p { font-size: 1.25rem; color: #6b7280; margin-bottom: 2rem; max-width: 600px; margin-left: auto; margin-right: auto; }
        .cta-buttons { display: flex; gap: 1rem; justify-content: center; margin-bottom: 3rem; }
        .hero-image { width: 100%; height: 300px; background: #f3f4f6; border: 2px solid {{.Palette.Accent}}; border-radius: 8px; display: flex; align-items: center; justify-content: center; color: #6b7280; }
        .features { padding: 5rem 0; background: #f9fafb; }
        .features h2 { text-align: center; font-size: 2.5rem; margin-bottom: 1rem; }
        .features-intro { text-align: center; color: #6b7280; font-size: 1.25rem; max-width: 600px; margin: 0 auto; }
        .features-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 2rem; margin-top: 3rem; }
        .feature-card { background: white; padding: 2rem; border-radius: 8px; text-align: center; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
        .feature-card p { color: #6b7280; }
        .feature-icon { width: 48px; height: 48px; background: {{.Palette.Primary}}; color: white; border-radius: 8px; margin: 0 auto 1rem; display: flex; align-items: center; justify-content: center; }
        .cta-section { padding: 5rem 0; text-align: center; }
        .cta-section p { color: #6b7280; font-size: 1.25rem; margin-bottom: 2rem; }
        footer { border-top: 1px solid #e5e7eb; padding: 3rem 0; }
        .footer-grid { display: grid; grid-template-columns: repeat(4, 1fr); gap: 2rem; }
        .footer-col h4 { margin-bottom: 1rem; }
        .footer-col ul { list-style: none; }
        .footer-col ul li { margin-bottom: 0.5rem; }
        .footer-col ul li a { color: #6b7280; text-decoration: none; }
        .footer-bottom { border-top: 1px solid #e5e7eb; margin-top: 2rem; padding-top: 2rem; text-align: center; color: #6b7280; }
        @media (max-width: 768px) {
            .hero h1 { font-size: 2rem; }
            .cta-buttons { flex-direction: column; align-items: center; }
            .footer-grid { grid-template-columns: 1fr; }
        }
    </style>
</head>
<body>
    <header>
        <div class="container">
            <div class="header-content">
                <div class="logo">
                    <div class="logo-icon"></div>
                    <span>{{.CompanyName}}</span>
                </div>
                <nav>
                    <a href="#features">Features</a>
                    <a href="#pricing">Pricing</a>
                    <a href="#contact">Contact</a>
                    <a href="#" class="btn btn-outline">Sign in</a>
                </nav>
            </div>
        </div>
    </header>

    <section class="hero">
        <div class="container">
            <div class="badge">{{.Tagline}}</div>
            <h1>{{.HeroTitle}}</h1>
            <p>{{.HeroSubtitle}}</p>
            <div class="cta-buttons">
                <a href="#" class="btn btn-primary">{{.CTA}}</a>
                <a href="#" class="btn btn-outline">Watch the demo</a>
            </div>
            <div class="hero-image">Product screenshot</div>
        </div>
    </section>

    <section class="features" id="features">
        <div class="container">
            <h2>Why choose {{.CompanyName}}?</h2>
            <p class="features-intro">{{.Description}}</p>
            <div class="features-grid">
{{- range .Features}}
                <div class="feature-card">
                    <div class="feature-icon">&#10003;</div>
                    <h3>{{.Title}}</h3>
                    <p>{{.Description}}</p>
                </div>
{{- end}}
            </div>
        </div>
    </section>

    <section class="cta-section">
        <div class="container">
            <h2>Ready to get started?</h2>
            <p>Join the companies that already trust us</p>
            <a href="#" class="btn btn-primary">{{.CTA}}</a>
        </div>
    </section>

    <footer>
        <div class="container">
            <div class="footer-grid">
                <div class="footer-col">
                    <div class="logo">
                        <div class="logo-icon" style="width: 24px; height: 24px;"></div>
                        <span>{{.CompanyName}}</span>
                    </div>
                    <p style="color: #6b7280; margin-top: 1rem;">{{.Description}}</p>
                </div>
                <div class="footer-col">
                    <h4>Product</h4>
                    <ul>
                        <li><a href="#">Features</a></li>
                        <li><a href="#">Pricing</a></li>
                        <li><a href="#">API</a></li>
                    </ul>
                </div>
                <div class="footer-col">
                    <h4>Company</h4>
                    <ul>
                        <li><a href="#">About</a></li>
                        <li><a href="#">Blog</a></li>
                        <li><a href="#">Careers</a></li>
                    </ul>
                </div>
                <div class="footer-col">
                    <h4>Support</h4>
                    <ul>
                        <li><a href="#">Help center</a></li>
                        <li><a href="#">Contact</a></li>
                        <li><a href="#">Status</a></li>
                    </ul>
                </div>
            </div>
            <div class="footer-bottom">
                <p>&copy; {{.CompanyName}}. All rights reserved.</p>
            </div>
        </div>
    </footer>
</body>
</html>
`

const componentTemplate = `import React from 'react';

const data = {{.Data}};

const colors = {
  primary: '{{.Classes.Primary}}',
  secondary: '{{.Classes.Secondary}}',
  accent: '{{.Classes.Accent}}',
};

const LandingPage = () => {
  return (
    <div className="min-h-screen bg-white">
      <header className="border-b">
        <div className="max-w-6xl mx-auto px-4 py-4 flex items-center justify-between">
          <div className="flex items-center gap-2">
            <div className={` + "`w-8 h-8 rounded ${colors.primary}`" + `}></div>
            <span className="text-lg font-medium">{data.companyName}</span>
          </div>
          <nav className="hidden md:flex items-center gap-6">
            <a href="#features" className="text-sm text-gray-600 hover:text-gray-900">Features</a>
            <a href="#pricing" className="text-sm text-gray-600 hover:text-gray-900">Pricing</a>
            <a href="#contact" className="text-sm text-gray-600 hover:text-gray-900">Contact</a>
            <button className="px-4 py-2 border border-gray-300 rounded-md text-sm hover:bg-gray-50">
              Sign in
            </button>
          </nav>
        </div>
      </header>

      <section className="py-20">
        <div className="max-w-6xl mx-auto px-4 text-center">
          <span className={` + "`inline-block px-3 py-1 rounded-full text-sm mb-6 ${colors.secondary}`" + `}>
            {data.tagline}
          </span>
          <h1 className="text-4xl md:text-6xl font-bold max-w-4xl mx-auto mb-6">
            {data.heroTitle}
          </h1>
          <p className="text-xl text-gray-600 max-w-2xl mx-auto mb-8">
            {data.heroSubtitle}
          </p>
          <div className="flex flex-col sm:flex-row gap-4 justify-center mb-12">
            <button className={` + "`px-6 py-3 rounded-md text-white font-medium ${colors.primary}`" + `}>
              {data.cta}
            </button>
            <button className="px-6 py-3 border border-gray-300 rounded-md hover:bg-gray-50">
              Watch the demo
            </button>
          </div>
          <div className={` + "`w-full h-64 rounded-lg border-2 ${colors.accent} bg-gray-50 flex items-center justify-center`" + `}>
            <span className="text-gray-500">Product screenshot</span>
          </div>
        </div>
      </section>

      <section className="py-20 bg-gray-50" id="features">
        <div className="max-w-6xl mx-auto px-4">
          <div className="text-center mb-16">
            <h2 className="text-3xl md:text-4xl font-bold mb-4">
              Why choose {data.companyName}?
            </h2>
            <p className="text-xl text-gray-600 max-w-2xl mx-auto">
              {data.description}
            </p>
          </div>
          <div className="grid md:grid-cols-3 gap-8">
            {data.features.map((feature, index) => (
              <div key={index} className="bg-white p-6 rounded-lg shadow-sm text-center">
                <div className={` + "`w-12 h-12 rounded-lg ${colors.primary} flex items-center justify-center mx-auto mb-4`" + `}>
                  <span className="text-white">✓</span>
                </div>
                <h3 className="text-xl font-medium mb-2">{feature.title}</h3>
                <p className="text-gray-600">{feature.description}</p>
              </div>
            ))}
          </div>
        </div>
      </section>

      <section className="py-20">
        <div className="max-w-4xl mx-auto px-4 text-center">
          <h2 className="text-3xl md:text-4xl font-bold mb-4">
            Ready to get started?
          </h2>
          <p className="text-xl text-gray-600 mb-8">
            Join the companies that already trust us
          </p>
          <button className={` + "`px-6 py-3 rounded-md text-white font-medium ${colors.primary}`" + `}>
            {data.cta}
          </button>
        </div>
      </section>

      <footer className="border-t py-12">
        <div className="max-w-6xl mx-auto px-4">
          <div className="grid md:grid-cols-4 gap-8">
            <div>
              <div className="flex items-center gap-2 mb-4">
                <div className={` + "`w-6 h-6 rounded ${colors.primary}`" + `}></div>
                <span className="font-medium">{data.companyName}</span>
              </div>
              <p className="text-sm text-gray-600">{data.description}</p>
            </div>
            <div>
              <h4 className="font-medium mb-4">Product</h4>
              <ul className="space-y-2 text-sm text-gray-600">
                <li><a href="#" className="hover:text-gray-900">Features</a></li>
                <li><a href="#" className="hover:text-gray-900">Pricing</a></li>
                <li><a href="#" className="hover:text-gray-900">API</a></li>
              </ul>
            </div>
            <div>
              <h4 className="font-medium mb-4">Company</h4>
              <ul className="space-y-2 text-sm text-gray-600">
                <li><a href="#" className="hover:text-gray-900">About</a></li>
                <li><a href="#" className="hover:text-gray-900">Blog</a></li>
                <li><a href="#" className="hover:text-gray-900">Careers</a></li>
              </ul>
            </div>
            <div>
              <h4 className="font-medium mb-4">Support</h4>
              <ul className="space-y-2 text-sm text-gray-600">
                <li><a href="#" className="hover:text-gray-900">Help center</a></li>
                <li><a href="#" className="hover:text-gray-900">Contact</a></li>
                <li><a href="#" className="hover:text-gray-900">Status</a></li>
              </ul>
            </div>
          </div>
          <div className="border-t pt-8 mt-8 text-center text-sm text-gray-600">
            © {data.companyName}. All rights reserved.
          </div>
        </div>
      </footer>
    </div>
  );
};

export default LandingPage;
`
